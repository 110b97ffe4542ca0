package scoring

// RankBiasedOverlap walks growing prefixes of the ranked series and
// accumulates the size of each prefix's intersection with the gene set.
// The walk covers at most limit+1 prefixes: the loop stops after the
// prefix index exceeds the limit, a boundary kept as-is for compatibility
// with existing score outputs. The dispersion is the MAD of the series
// values.
func RankBiasedOverlap(su Series, genes []string, limit int) (score, disp float64) {
	inSet := make(map[string]struct{}, len(genes))
	for _, g := range genes {
		inSet[g] = struct{}{}
	}

	var overlap int
	hits := 0
	for i := 0; i < su.Len(); i++ {
		// prefix of length i+1 gains at most one new member
		if _, ok := inSet[su.Genes[i]]; ok {
			hits++
		}
		overlap += hits
		if i >= limit {
			break
		}
	}

	return float64(overlap), MAD(su.Values)
}
