// Package geneset parses GMT gene-set files and resolves signature modes.
package geneset

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vantage-bio/cellsig/internal/scoring"
)

// rawSet is one GMT line before mode resolution.
type rawSet struct {
	name  string
	genes []string
}

// ParseGMT reads tab-separated gene sets: name, description, then genes.
// Sets whose names end in _UP/_DN (or _DOWN) are paired by their shared
// base name into a single BOTH-mode set; an unpaired suffixed set keeps
// its single-sided mode, and unsuffixed sets default to UP.
func ParseGMT(r io.Reader) ([]scoring.GeneSet, error) {
	var raw []rawSet

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r\n")
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("gmt line %d: expected name, description and at least one gene, got %d fields", line, len(fields))
		}
		genes := make([]string, 0, len(fields)-2)
		for _, g := range fields[2:] {
			if g = strings.TrimSpace(g); g != "" {
				genes = append(genes, g)
			}
		}
		if len(genes) == 0 {
			return nil, fmt.Errorf("gmt line %d: gene set %s has no genes", line, fields[0])
		}
		raw = append(raw, rawSet{name: fields[0], genes: genes})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan gmt: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("gmt input contains no gene sets")
	}

	sets := pairSets(raw)
	log.Debug().Int("raw", len(raw)).Int("resolved", len(sets)).Msg("parsed gmt gene sets")
	return sets, nil
}

// splitSuffix returns the base name and the side a suffix implies.
func splitSuffix(name string) (base string, side scoring.Mode, ok bool) {
	upper := strings.ToUpper(name)
	switch {
	case strings.HasSuffix(upper, "_UP"):
		return name[:len(name)-len("_UP")], scoring.ModeUp, true
	case strings.HasSuffix(upper, "_DOWN"):
		return name[:len(name)-len("_DOWN")], scoring.ModeDn, true
	case strings.HasSuffix(upper, "_DN"):
		return name[:len(name)-len("_DN")], scoring.ModeDn, true
	default:
		return name, "", false
	}
}

// pairSets merges _UP/_DN partners into BOTH-mode sets, preserving first
// appearance order.
func pairSets(raw []rawSet) []scoring.GeneSet {
	type pending struct {
		set scoring.GeneSet
	}
	byBase := make(map[string]*pending)
	var order []*pending

	for _, rs := range raw {
		base, side, suffixed := splitSuffix(rs.name)
		if !suffixed {
			p := &pending{set: scoring.GeneSet{Name: rs.name, Mode: scoring.ModeUp, GenesUp: rs.genes}}
			order = append(order, p)
			continue
		}

		p, seen := byBase[base]
		if !seen {
			p = &pending{set: scoring.GeneSet{Name: base}}
			byBase[base] = p
			order = append(order, p)
		}
		if side == scoring.ModeUp {
			p.set.GenesUp = rs.genes
		} else {
			p.set.GenesDn = rs.genes
		}
	}

	sets := make([]scoring.GeneSet, 0, len(order))
	for _, p := range order {
		switch {
		case len(p.set.GenesUp) > 0 && len(p.set.GenesDn) > 0:
			p.set.Mode = scoring.ModeBoth
		case len(p.set.GenesDn) > 0:
			p.set.Mode = scoring.ModeDn
		default:
			p.set.Mode = scoring.ModeUp
		}
		sets = append(sets, p.set)
	}
	return sets
}
