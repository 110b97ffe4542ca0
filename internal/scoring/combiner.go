// Package scoring computes per-cell gene-set enrichment scores from
// expression or rank profiles.
package scoring

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// leg is one selector invocation resolved from the mode decision table.
type leg struct {
	col   Column
	genes []string
}

// legsFor resolves the (mode, ranked) pair into the selector invocations
// to run. UP and DN score a single gene list against its matching value
// source (counts when unranked, the corresponding rank column when
// ranked); BOTH scores both sides and the caller sums the results.
func legsFor(gs GeneSet, ranked bool) ([]leg, error) {
	upCol, dnCol := ColCounts, ColCounts
	if ranked {
		upCol, dnCol = ColUpRank, ColDnRank
	}

	switch gs.Mode {
	case ModeUp:
		return []leg{{upCol, gs.GenesUp}}, nil
	case ModeDn:
		return []leg{{dnCol, gs.GenesDn}}, nil
	case ModeBoth:
		if len(gs.GenesUp) == 0 || len(gs.GenesDn) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrBothModeEmptySide, gs.Name)
		}
		return []leg{{upCol, gs.GenesUp}, {dnCol, gs.GenesDn}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, gs.Mode)
	}
}

// ScoreFun scores one gene set against one cell's expression table and
// returns the result record. For UP and DN sets the selector result passes
// through unchanged; for BOTH sets the up and down scores and dispersions
// are each summed. ScoreFun is a pure function of its inputs and is safe
// to call concurrently as long as the table is not mutated.
func ScoreFun(gs GeneSet, table *ExpressionTable, method Method, params MethodParams, barcode string, ranked bool) (ScoreResult, error) {
	if ranked && !table.HasRanks() {
		return ScoreResult{}, fmt.Errorf("score %s for cell %s: %w", gs.Name, barcode, ErrMissingRankColumns)
	}

	legs, err := legsFor(gs, ranked)
	if err != nil {
		return ScoreResult{}, err
	}

	res := ScoreResult{Barcode: barcode, Name: gs.Name, Mode: gs.Mode}
	for _, l := range legs {
		score, disp, err := SelectMethod(table, l.col, l.genes, method, params)
		if err != nil {
			return ScoreResult{}, fmt.Errorf("score %s (%s) for cell %s: %w", gs.Name, l.col, barcode, err)
		}
		res.Score += score
		res.Var += disp
	}

	log.Debug().
		Str("barcode", barcode).
		Str("geneset", gs.Name).
		Str("method", string(method)).
		Float64("score", res.Score).
		Float64("var", res.Var).
		Msg("scored gene set")

	return res, nil
}
