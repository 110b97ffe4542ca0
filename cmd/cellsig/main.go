package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/vantage-bio/cellsig/internal/api"
	"github.com/vantage-bio/cellsig/internal/config"
	"github.com/vantage-bio/cellsig/internal/expr"
	"github.com/vantage-bio/cellsig/internal/geneset"
	"github.com/vantage-bio/cellsig/internal/runner"
	"github.com/vantage-bio/cellsig/internal/scoring"
	"github.com/vantage-bio/cellsig/internal/store"
	"github.com/vantage-bio/cellsig/internal/utils/logger"
)

var version = "v0.1.0-dev"

func main() {
	logger.Init()

	app := &cli.App{
		Name:    "cellsig",
		Version: version,
		Usage:   "per-cell gene set scoring for single-cell expression data",
		Commands: []*cli.Command{
			scoreCmd,
			serveCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

var scoreCmd = &cli.Command{
	Name:  "score",
	Usage: "Score a counts matrix against gene sets and write results",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML run config (flags override its values)"},
		&cli.StringFlag{Name: "counts", Usage: "Counts matrix CSV/TSV, optionally gzipped"},
		&cli.StringFlag{Name: "genesets", Usage: "GMT gene set file path or http(s) URL"},
		&cli.StringFlag{Name: "method", Usage: "Scoring method"},
		&cli.StringFlag{Name: "normalization", Usage: "singscore normalization (standard|theoretical)"},
		&cli.IntFlag{Name: "rbo-depth", Usage: "rank_biased_overlap prefix depth"},
		&cli.BoolFlag{Name: "ranked", Usage: "Score rank columns instead of raw counts"},
		&cli.IntFlag{Name: "workers", Usage: "Parallel cell workers (0 = CPU count)"},
		&cli.StringFlag{Name: "csv", Usage: "CSV output path (default: stdout)"},
		&cli.StringFlag{Name: "db", Usage: "SQLite results database path"},
	},
	Action: runScore,
}

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "Serve the scoring API over HTTP",
	Action: runServe,
}

// resolveRunConfig layers env defaults, the optional YAML run file and CLI
// flags, in increasing precedence.
func resolveRunConfig(c *cli.Context) (*config.RunConfig, error) {
	envCfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	run := &config.RunConfig{
		Method:        envCfg.Method,
		Normalization: envCfg.Normalization,
		RBODepth:      envCfg.RBODepth,
		Ranked:        envCfg.Ranked,
		Workers:       envCfg.Workers,
		Output: config.RunOutput{
			CSV: envCfg.CSVPath,
			DB:  envCfg.DBPath,
		},
	}

	if path := c.String("config"); path != "" {
		fileCfg, err := config.LoadRunConfig(path)
		if err != nil {
			return nil, err
		}
		if fileCfg.Counts != "" {
			run.Counts = fileCfg.Counts
		}
		if fileCfg.GeneSets != "" {
			run.GeneSets = fileCfg.GeneSets
		}
		if fileCfg.Method != "" {
			run.Method = fileCfg.Method
		}
		if fileCfg.Normalization != "" {
			run.Normalization = fileCfg.Normalization
		}
		if fileCfg.RBODepth != 0 {
			run.RBODepth = fileCfg.RBODepth
		}
		if fileCfg.Workers != 0 {
			run.Workers = fileCfg.Workers
		}
		if fileCfg.Ranked {
			run.Ranked = true
		}
		if fileCfg.Output.CSV != "" {
			run.Output.CSV = fileCfg.Output.CSV
		}
		if fileCfg.Output.DB != "" {
			run.Output.DB = fileCfg.Output.DB
		}
	}

	if c.IsSet("counts") {
		run.Counts = c.String("counts")
	}
	if c.IsSet("genesets") {
		run.GeneSets = c.String("genesets")
	}
	if c.IsSet("method") {
		run.Method = c.String("method")
	}
	if c.IsSet("normalization") {
		run.Normalization = c.String("normalization")
	}
	if c.IsSet("rbo-depth") {
		run.RBODepth = c.Int("rbo-depth")
	}
	if c.IsSet("ranked") {
		run.Ranked = c.Bool("ranked")
	}
	if c.IsSet("workers") {
		run.Workers = c.Int("workers")
	}
	if c.IsSet("csv") {
		run.Output.CSV = c.String("csv")
	}
	if c.IsSet("db") {
		run.Output.DB = c.String("db")
	}

	if run.Counts == "" {
		return nil, fmt.Errorf("counts matrix not specified (--counts or run config)")
	}
	if run.GeneSets == "" {
		return nil, fmt.Errorf("gene sets not specified (--genesets or run config)")
	}
	return run, nil
}

func runScore(c *cli.Context) error {
	run, err := resolveRunConfig(c)
	if err != nil {
		return err
	}

	method, err := scoring.ParseMethod(run.Method)
	if err != nil {
		return err
	}
	params := scoring.MethodParams{
		Normalization: scoring.NormMethod(run.Normalization),
		RBODepth:      run.RBODepth,
	}

	sets, err := geneset.Load(run.GeneSets)
	if err != nil {
		return err
	}
	matrix, err := expr.Load(run.Counts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runner.Run(ctx, matrix, sets, runner.Options{
		Method:  method,
		Params:  params,
		Ranked:  run.Ranked,
		Workers: run.Workers,
	})
	if err != nil {
		return err
	}

	if run.Output.DB != "" {
		s, err := store.Open(run.Output.DB)
		if err != nil {
			return err
		}
		defer s.Close()
		runID, err := s.SaveRun(ctx, method, run.Ranked, results)
		if err != nil {
			return err
		}
		log.Info().Str("run_id", runID).Str("db", run.Output.DB).Msg("results saved")
	}

	if run.Output.CSV != "" {
		if err := store.WriteCSVFile(run.Output.CSV, results); err != nil {
			return err
		}
		log.Info().Str("csv", run.Output.CSV).Msg("results written")
		return nil
	}
	if run.Output.DB == "" {
		return store.WriteCSV(os.Stdout, results)
	}
	return nil
}

func runServe(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load env config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.NewServer(cfg.ServerEnvConfig).Start(ctx)
}
