package scoring

import "fmt"

// Mode selects which side of a gene signature contributes to the score.
type Mode string

const (
	ModeUp   Mode = "UP"
	ModeDn   Mode = "DN"
	ModeBoth Mode = "BOTH"
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeUp, ModeDn, ModeBoth:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// GeneSet is a named signature of up- and/or down-regulated genes.
type GeneSet struct {
	Name    string   `json:"name"`
	Mode    Mode     `json:"mode"`
	GenesUp []string `json:"genesUp,omitempty"`
	GenesDn []string `json:"genesDn,omitempty"`
}

// Column names a value column of an ExpressionTable.
type Column int

const (
	ColCounts Column = iota
	ColUpRank
	ColDnRank
)

func (c Column) String() string {
	switch c {
	case ColCounts:
		return "counts"
	case ColUpRank:
		return "uprank"
	case ColDnRank:
		return "dnrank"
	default:
		return "unknown"
	}
}

// row holds the per-gene values of one cell.
type row struct {
	counts float64
	uprank float64
	dnrank float64
}

// ExpressionTable is the expression profile of a single cell, indexed by
// gene identifier. The counts column is always present; the rank columns
// are optional and required only for ranked scoring. The table is
// read-only once constructed.
type ExpressionTable struct {
	genes    []string
	rows     map[string]row
	hasRanks bool
}

// NewExpressionTable builds a table from parallel slices. uprank and dnrank
// may both be nil for an unranked table; otherwise all slices must have the
// same length as genes.
func NewExpressionTable(genes []string, counts, uprank, dnrank []float64) (*ExpressionTable, error) {
	if len(counts) != len(genes) {
		return nil, fmt.Errorf("counts length %d does not match gene index length %d", len(counts), len(genes))
	}
	hasRanks := uprank != nil || dnrank != nil
	if hasRanks && (len(uprank) != len(genes) || len(dnrank) != len(genes)) {
		return nil, fmt.Errorf("rank column lengths (%d, %d) do not match gene index length %d", len(uprank), len(dnrank), len(genes))
	}

	t := &ExpressionTable{
		genes:    append([]string(nil), genes...),
		rows:     make(map[string]row, len(genes)),
		hasRanks: hasRanks,
	}
	for i, g := range genes {
		r := row{counts: counts[i]}
		if hasRanks {
			r.uprank = uprank[i]
			r.dnrank = dnrank[i]
		}
		t.rows[g] = r
	}
	return t, nil
}

// Len returns the number of genes in the table index.
func (t *ExpressionTable) Len() int { return len(t.genes) }

// Genes returns the ordered gene index.
func (t *ExpressionTable) Genes() []string { return t.genes }

// Contains reports whether the gene is present in the table index.
func (t *ExpressionTable) Contains(gene string) bool {
	_, ok := t.rows[gene]
	return ok
}

// HasRanks reports whether the rank columns were populated.
func (t *ExpressionTable) HasRanks() bool { return t.hasRanks }

// Value returns the entry of the given column for one gene.
func (t *ExpressionTable) Value(gene string, col Column) (float64, bool) {
	r, ok := t.rows[gene]
	if !ok {
		return 0, false
	}
	switch col {
	case ColUpRank:
		return r.uprank, true
	case ColDnRank:
		return r.dnrank, true
	default:
		return r.counts, true
	}
}

// ColumnValues returns the full column in gene-index order.
func (t *ExpressionTable) ColumnValues(col Column) []float64 {
	out := make([]float64, len(t.genes))
	for i, g := range t.genes {
		out[i], _ = t.Value(g, col)
	}
	return out
}

// Series is an ordered gene-to-value sequence extracted from a table column.
type Series struct {
	Genes  []string
	Values []float64
}

// Len returns the number of entries in the series.
func (s Series) Len() int { return len(s.Values) }

// NormMethod selects the singscore normalization variant.
type NormMethod string

const (
	NormStandard    NormMethod = "standard"
	NormTheoretical NormMethod = "theoretical"
)

// MethodParams carries the per-method tuning knobs.
type MethodParams struct {
	// Normalization is consumed by the singscore method.
	Normalization NormMethod `json:"normalization,omitempty" yaml:"normalization,omitempty"`
	// RBODepth is the prefix depth limit of the rank_biased_overlap method.
	RBODepth int `json:"rboDepth,omitempty" yaml:"rbo_depth,omitempty"`
}

// DefaultMethodParams returns the parameter defaults used when a caller
// supplies none.
func DefaultMethodParams() MethodParams {
	return MethodParams{
		Normalization: NormStandard,
		RBODepth:      DefaultRBODepth,
	}
}

// ScoreResult is one scored (cell, gene set) pair. Var is a dispersion
// estimate, not a strict statistical variance: it is the MAD or standard
// deviation the method reports, and for BOTH-mode sets the sum of the two
// per-side dispersions.
type ScoreResult struct {
	Barcode string  `json:"barcode"`
	Name    string  `json:"name"`
	Mode    Mode    `json:"mode"`
	Score   float64 `json:"score"`
	Var     float64 `json:"var"`
}
