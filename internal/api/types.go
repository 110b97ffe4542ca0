package api

import "github.com/vantage-bio/cellsig/internal/scoring"

// ScoreRequest scores one cell profile against a batch of gene sets.
type ScoreRequest struct {
	Barcode  string               `json:"barcode"`
	Genes    []string             `json:"genes"`
	Counts   []float64            `json:"counts"`
	GeneSets []scoring.GeneSet    `json:"geneSets"`
	Method   string               `json:"method"`
	Ranked   bool                 `json:"ranked"`
	Params   scoring.MethodParams `json:"params"`
}

// ScoreResponse carries the per-gene-set results.
type ScoreResponse struct {
	Status  string                `json:"status"`
	Results []scoring.ScoreResult `json:"results,omitempty"`
	Message string                `json:"message,omitempty"`
}
