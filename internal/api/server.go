// Package api serves the scoring core over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/vantage-bio/cellsig/internal/config"
	"github.com/vantage-bio/cellsig/internal/expr"
	"github.com/vantage-bio/cellsig/internal/scoring"
)

const shutdownTimeout = 5 * time.Second

// Server hosts the scoring endpoints.
type Server struct {
	app *fiber.App
	cfg config.ServerEnvConfig
}

// NewServer builds the fiber app with its routes and middleware.
func NewServer(cfg config.ServerEnvConfig) *Server {
	app := fiber.New(fiber.Config{
		JSONEncoder: sonic.Marshal,
		JSONDecoder: sonic.Unmarshal,
		BodyLimit:   cfg.BodySizeLimit,
	})

	app.Use(recover.New())
	app.Use(compress.New())

	s := &Server{app: app, cfg: cfg}
	app.Get("/healthz", s.handleHealth)
	app.Post("/api/v1/score", s.handleScore)
	return s
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleScore(c *fiber.Ctx) error {
	var req ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal score request")
		return c.Status(fiber.StatusBadRequest).JSON(ScoreResponse{Status: "error", Message: "invalid payload"})
	}

	results, err := scoreRequest(&req)
	if err != nil {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, scoring.ErrUnsupportedMethod) {
			status = fiber.StatusBadRequest
		}
		log.Error().Err(err).Str("barcode", req.Barcode).Msg("score request failed")
		return c.Status(status).JSON(ScoreResponse{Status: "error", Message: err.Error()})
	}

	return c.JSON(ScoreResponse{Status: "ok", Results: results})
}

// scoreRequest validates the request and scores every gene set against the
// submitted cell profile.
func scoreRequest(req *ScoreRequest) ([]scoring.ScoreResult, error) {
	method, err := scoring.ParseMethod(req.Method)
	if err != nil {
		return nil, err
	}
	if len(req.GeneSets) == 0 {
		return nil, fmt.Errorf("no gene sets in request")
	}

	params := req.Params
	if params.Normalization == "" {
		params.Normalization = scoring.NormStandard
	}
	if params.RBODepth == 0 {
		params.RBODepth = scoring.DefaultRBODepth
	}

	table, err := expr.Table(req.Genes, req.Counts, req.Ranked)
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}

	results := make([]scoring.ScoreResult, 0, len(req.GeneSets))
	for _, gs := range req.GeneSets {
		res, err := scoring.ScoreFun(gs, table, method, params, req.Barcode, req.Ranked)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)
	go func() {
		log.Info().Str("addr", addr).Msg("scoring api listening")
		if err := s.app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("server listen failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}
