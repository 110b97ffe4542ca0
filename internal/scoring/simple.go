package scoring

// SummedUp sums the extracted values. The dispersion is the MAD of the
// extracted values.
func SummedUp(su []float64) (score, disp float64) {
	return Sum(su), MAD(su)
}

// MedianScore returns the median of the extracted values with their MAD as
// dispersion.
func MedianScore(su []float64) (score, disp float64) {
	return Median(su), MAD(su)
}

// AverageScore returns the mean of the extracted values with their
// population standard deviation as dispersion.
func AverageScore(su []float64) (score, disp float64) {
	return Mean(su), Std(su)
}
