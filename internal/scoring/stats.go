package scoring

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics primitives shared by the scoring methods.
//
// Degenerate inputs follow one policy everywhere: every primitive returns 0
// for an empty sequence, and Std/MAD return 0 for a single element. Methods
// that go on to divide by a dispersion check for 0 and report
// ErrDegenerateDispersion instead of producing infinities.

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	return floats.Sum(values)
}

// Mean returns the arithmetic mean of values, 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// Median returns the median of values, interpolating the two middle
// elements for even lengths. The input is not modified.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Std returns the population standard deviation of values (dividing by n,
// not n-1), 0 for fewer than two elements.
func Std(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	return stat.PopStdDev(values, nil)
}

// MAD returns the median absolute deviation of values scaled for
// consistency with the standard deviation under normality
// (median(|x - median(x)|) * 1.4826). Returns 0 for fewer than two
// elements.
func MAD(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	med := Median(values)
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - med)
	}
	return madScale * Median(dev)
}
