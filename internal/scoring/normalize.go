package scoring

import "fmt"

// Normalize maps a mean-rank score into [0, 1].
//
// standard divides the score by the library size. theoretical rescales
// between the smallest and largest mean rank the signature could attain:
// (sigLen+1)/2 when the signature occupies the bottom of the ranking and
// libraryLen-(sigLen-1)/2 when it occupies the top. Both mappings are
// monotonic in score.
func Normalize(method NormMethod, libraryLen int, scoreList []float64, score float64, sigLen int) (float64, error) {
	switch method {
	case NormStandard:
		if libraryLen == 0 {
			return 0, nil
		}
		return score / float64(libraryLen), nil
	case NormTheoretical:
		low := (float64(sigLen) + 1) / 2
		high := float64(libraryLen) - (float64(sigLen)-1)/2
		if high == low {
			return 0, nil
		}
		return (score - low) / (high - low), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownNormalization, method)
	}
}
