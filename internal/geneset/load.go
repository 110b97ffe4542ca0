package geneset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"github.com/vantage-bio/cellsig/internal/scoring"
)

const fetchTimeout = 30 * time.Second

// Load reads gene sets from a local GMT file or an http(s) URL. Local
// files ending in .gz are decompressed transparently.
func Load(pathOrURL string) ([]scoring.GeneSet, error) {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return fetch(pathOrURL)
	}

	f, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("open gene set file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(pathOrURL, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip gene set file %s: %w", pathOrURL, err)
		}
		defer gz.Close()
		r = gz
	}

	sets, err := ParseGMT(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pathOrURL, err)
	}
	return sets, nil
}

// fetch downloads a GMT file over HTTP.
func fetch(url string) ([]scoring.GeneSet, error) {
	client := resty.New().SetTimeout(fetchTimeout)

	resp, err := client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch gene sets from %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch gene sets from %s: status %d", url, resp.StatusCode())
	}

	log.Info().Str("url", url).Int("bytes", len(resp.Body())).Msg("fetched gene set file")

	sets, err := ParseGMT(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return sets, nil
}
