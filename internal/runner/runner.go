// Package runner fans per-cell scoring calls out across workers. The
// scoring core is pure, so cells are scored independently with no
// coordination beyond the worker limit.
package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/vantage-bio/cellsig/internal/expr"
	"github.com/vantage-bio/cellsig/internal/scoring"
	"github.com/vantage-bio/cellsig/internal/utils/logger"
)

// Options configures one scoring run.
type Options struct {
	Method  scoring.Method
	Params  scoring.MethodParams
	Ranked  bool
	Workers int
}

// Run scores every (cell, gene set) pair of the matrix and returns the
// results in cell-major order. Workers defaults to the CPU count.
func Run(ctx context.Context, m *expr.Matrix, sets []scoring.GeneSet, opts Options) ([]scoring.ScoreResult, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("no gene sets to score")
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	results := make([]scoring.ScoreResult, m.NumCells()*len(sets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for cell := 0; cell < m.NumCells(); cell++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			table, err := m.CellTable(cell, opts.Ranked)
			if err != nil {
				return err
			}

			barcode := m.Barcodes[cell]
			for j, gs := range sets {
				res, err := scoring.ScoreFun(gs, table, opts.Method, opts.Params, barcode, opts.Ranked)
				if err != nil {
					return fmt.Errorf("cell %s: %w", barcode, err)
				}
				results[cell*len(sets)+j] = res
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Int("results", len(results)).Msg("scoring run complete")
	logger.Sugar().Infow("scored cells",
		"cells", m.NumCells(),
		"genesets", len(sets),
		"method", string(opts.Method),
		"ranked", opts.Ranked,
		"workers", workers,
		"elapsed", time.Since(start),
	)

	return results, nil
}
