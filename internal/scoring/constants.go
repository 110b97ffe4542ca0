package scoring

const (
	// DefaultRBODepth bounds the rank_biased_overlap prefix walk.
	DefaultRBODepth = 100

	// madScale makes the MAD a consistent estimator of the standard
	// deviation under normality: 1 / Phi^-1(3/4).
	madScale = 1.482602218505602
)
