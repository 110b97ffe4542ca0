package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vantage-bio/cellsig/internal/scoring"
)

// WriteCSV writes results as CSV with a header row.
func WriteCSV(w io.Writer, results []scoring.ScoreResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"barcode", "name", "mode", "score", "var"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		rec := []string{
			r.Barcode,
			r.Name,
			string(r.Mode),
			strconv.FormatFloat(r.Score, 'g', -1, 64),
			strconv.FormatFloat(r.Var, 'g', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write result for %s/%s: %w", r.Barcode, r.Name, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes results to a CSV file at path.
func WriteCSVFile(path string, results []scoring.ScoreResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
