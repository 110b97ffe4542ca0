package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-bio/cellsig/internal/scoring"
)

func sampleResults() []scoring.ScoreResult {
	return []scoring.ScoreResult{
		{Barcode: "AAAC-1", Name: "TCELL", Mode: scoring.ModeBoth, Score: 12.5, Var: 3.25},
		{Barcode: "AAAC-1", Name: "STRESS", Mode: scoring.ModeUp, Score: -0.25, Var: 0.5},
		{Barcode: "TTGG-1", Name: "TCELL", Mode: scoring.ModeBoth, Score: 8, Var: 1},
	}
}

func TestSaveRunRoundTrip(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	runID, err := s.SaveRun(ctx, scoring.MethodSingscore, true, sampleResults())
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	got, err := s.RunResults(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, sampleResults(), got)

	// an unknown run yields no rows
	got, err = s.RunResults(ctx, "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResults()[:2]))

	want := "barcode,name,mode,score,var\n" +
		"AAAC-1,TCELL,BOTH,12.5,3.25\n" +
		"AAAC-1,STRESS,UP,-0.25,0.5\n"
	assert.Equal(t, want, buf.String())
}
