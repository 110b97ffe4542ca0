package scoring

import "math"

// MeanZ scores the gene set as the mean absolute z-score of its values
// against the whole column: mean over su of |v - mean(exprdat)| / std(exprdat).
// The dispersion is the column standard deviation. A zero column standard
// deviation is reported as ErrDegenerateDispersion.
func MeanZ(exprdat, su []float64) (score, disp float64, err error) {
	colMean := Mean(exprdat)
	colStd := Std(exprdat)
	if colStd == 0 {
		return 0, 0, ErrDegenerateDispersion
	}
	centered := make([]float64, len(su))
	for i, v := range su {
		centered[i] = math.Abs(v-colMean) / colStd
	}
	return Mean(centered), colStd, nil
}

// RobustStd is the robust analogue of MeanZ: the median over su of
// |v - median(exprdat)| / MAD(exprdat), with the column MAD as dispersion.
// A zero column MAD is reported as ErrDegenerateDispersion.
func RobustStd(exprdat, su []float64) (score, disp float64, err error) {
	colMed := Median(exprdat)
	colMAD := MAD(exprdat)
	if colMAD == 0 {
		return 0, 0, ErrDegenerateDispersion
	}
	centered := make([]float64, len(su))
	for i, v := range su {
		centered[i] = math.Abs(v-colMed) / colMAD
	}
	return Median(centered), colMAD, nil
}
