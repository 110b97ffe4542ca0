// Package expr loads gene expression count matrices and turns them into
// per-cell expression tables ready for scoring.
package expr

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"github.com/vantage-bio/cellsig/internal/scoring"
)

// Matrix is a genes-by-cells count matrix. Rows are genes, columns are
// cell barcodes.
type Matrix struct {
	Genes    []string
	Barcodes []string
	counts   [][]float64
}

// Load reads a count matrix from a CSV or TSV file. Files ending in .gz
// are decompressed transparently. Tab separation is assumed for .tsv and
// .txt files, comma otherwise.
func Load(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open counts file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip counts file %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	sep := ','
	if strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt") {
		sep = '\t'
	}

	m, err := Read(r, sep)
	if err != nil {
		return nil, fmt.Errorf("read counts file %s: %w", path, err)
	}

	log.Info().
		Str("path", path).
		Int("genes", len(m.Genes)).
		Int("cells", len(m.Barcodes)).
		Msg("loaded count matrix")

	return m, nil
}

// Read parses a count matrix from r. The first row holds cell barcodes,
// the first column gene identifiers.
func Read(r io.Reader, sep rune) (*Matrix, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header has %d columns, expected a gene column plus at least one barcode", len(header))
	}
	barcodes := header[1:]

	m := &Matrix{Barcodes: barcodes}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if len(rec) != len(barcodes)+1 {
			return nil, fmt.Errorf("line %d has %d columns, expected %d", line, len(rec), len(barcodes)+1)
		}

		row := make([]float64, len(barcodes))
		for i, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, gene %s: parse count %q: %w", line, rec[0], field, err)
			}
			row[i] = v
		}
		m.Genes = append(m.Genes, rec[0])
		m.counts = append(m.counts, row)
	}

	if len(m.Genes) == 0 {
		return nil, fmt.Errorf("count matrix has no gene rows")
	}
	return m, nil
}

// NumCells returns the number of cell columns.
func (m *Matrix) NumCells() int { return len(m.Barcodes) }

// CellCounts returns the counts column of cell i in gene order.
func (m *Matrix) CellCounts(i int) []float64 {
	col := make([]float64, len(m.Genes))
	for g := range m.Genes {
		col[g] = m.counts[g][i]
	}
	return col
}

// CellTable builds the scoring table for cell i.
func (m *Matrix) CellTable(i int, ranked bool) (*scoring.ExpressionTable, error) {
	if i < 0 || i >= m.NumCells() {
		return nil, fmt.Errorf("cell index %d out of range [0, %d)", i, m.NumCells())
	}

	table, err := Table(m.Genes, m.CellCounts(i), ranked)
	if err != nil {
		return nil, fmt.Errorf("build table for cell %s: %w", m.Barcodes[i], err)
	}
	return table, nil
}

// Table builds a scoring table from a gene index and one counts column,
// deriving rank columns when ranked is true: uprank is the ascending
// average rank (highest expression gets the highest rank) and dnrank its
// mirror.
func Table(genes []string, counts []float64, ranked bool) (*scoring.ExpressionTable, error) {
	var uprank, dnrank []float64
	if ranked {
		uprank = averageRanks(counts)
		n := float64(len(counts))
		dnrank = make([]float64, len(uprank))
		for j, r := range uprank {
			dnrank[j] = n + 1 - r
		}
	}
	return scoring.NewExpressionTable(genes, counts, uprank, dnrank)
}
