package scoring

import "fmt"

// Method is the closed set of scoring methods.
type Method string

const (
	MethodSummedUp          Method = "summed_up"
	MethodMedianScore       Method = "median_score"
	MethodAverageScore      Method = "average_score"
	MethodMeanZ             Method = "mean_z"
	MethodRobustStd         Method = "robust_std"
	MethodRankBiasedOverlap Method = "rank_biased_overlap"
	MethodSingscore         Method = "singscore"
)

// Methods lists every supported scoring method.
func Methods() []Method {
	return []Method{
		MethodSummedUp,
		MethodMedianScore,
		MethodAverageScore,
		MethodMeanZ,
		MethodRobustStd,
		MethodRankBiasedOverlap,
		MethodSingscore,
	}
}

// ParseMethod converts a string into a Method.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	switch m {
	case MethodSummedUp, MethodMedianScore, MethodAverageScore,
		MethodMeanZ, MethodRobustStd, MethodRankBiasedOverlap, MethodSingscore:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

// SelectMethod extracts the gene-set values from the named column and
// dispatches to the scoring method, supplying each method the inputs it
// needs: the extracted series for all of them, the full column for the
// z-score variants, and the method parameters for rank_biased_overlap and
// singscore.
func SelectMethod(table *ExpressionTable, col Column, genes []string, method Method, params MethodParams) (score, disp float64, err error) {
	su, sigLen := Extract(table, col, genes)

	switch method {
	case MethodSummedUp:
		score, disp = SummedUp(su.Values)
		return score, disp, nil
	case MethodMedianScore:
		score, disp = MedianScore(su.Values)
		return score, disp, nil
	case MethodAverageScore:
		score, disp = AverageScore(su.Values)
		return score, disp, nil
	case MethodMeanZ:
		return MeanZ(table.ColumnValues(col), su.Values)
	case MethodRobustStd:
		return RobustStd(table.ColumnValues(col), su.Values)
	case MethodRankBiasedOverlap:
		score, disp = RankBiasedOverlap(su, genes, params.RBODepth)
		return score, disp, nil
	case MethodSingscore:
		return Singscore(table.Len(), su.Values, sigLen, params.Normalization)
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
}
