package scoring

// Singscore scores the signature by its mean rank, normalized against the
// library size and centered so that 0 means no enrichment either way. The
// returned score lies in [-0.5, 0.5]; the dispersion is the MAD of the
// extracted values.
func Singscore(libraryLen int, su []float64, sigLen int, norm NormMethod) (score, disp float64, err error) {
	raw := Mean(su)
	normalized, err := Normalize(norm, libraryLen, su, raw, sigLen)
	if err != nil {
		return 0, 0, err
	}
	return normalized - 0.5, MAD(su), nil
}
