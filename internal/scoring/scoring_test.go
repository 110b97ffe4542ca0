package scoring

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTable builds a six-gene cell profile with precomputed rank columns.
// counts: A=5 B=3 C=8 D=1 E=9 F=2.
func testTable(t *testing.T) *ExpressionTable {
	t.Helper()
	table, err := NewExpressionTable(
		[]string{"A", "B", "C", "D", "E", "F"},
		[]float64{5, 3, 8, 1, 9, 2},
		[]float64{4, 3, 5, 1, 6, 2},
		[]float64{3, 4, 2, 6, 1, 5},
	)
	require.NoError(t, err)
	return table
}

func TestExtract(t *testing.T) {
	table := testTable(t)

	su, matched := Extract(table, ColCounts, []string{"A", "C", "MISSING"})
	assert.Equal(t, 2, matched)
	assert.Equal(t, []string{"A", "C"}, su.Genes)
	assert.Equal(t, []float64{5, 8}, su.Values)

	su, matched = Extract(table, ColUpRank, []string{"E", "B"})
	assert.Equal(t, 2, matched)
	assert.Equal(t, []float64{6, 3}, su.Values)

	su, matched = Extract(table, ColCounts, nil)
	assert.Equal(t, 0, matched)
	assert.Zero(t, su.Len())
}

func TestSimpleMethods(t *testing.T) {
	score, disp := AverageScore([]float64{2, 4, 6})
	assert.Equal(t, 4.0, score)
	assert.InDelta(t, 1.633, disp, 1e-3)

	score, disp = MedianScore([]float64{1, 2, 3, 100})
	assert.Equal(t, 2.5, score)
	assert.InDelta(t, 1.4826, disp, 1e-4)

	score, disp = SummedUp([]float64{5, 8})
	assert.Equal(t, 13.0, score)
	assert.InDelta(t, 2.2239, disp, 1e-4)

	// documented degenerate policy: empty input scores 0 with 0 dispersion
	score, disp = SummedUp(nil)
	assert.Zero(t, score)
	assert.Zero(t, disp)
}

func TestMeanZ(t *testing.T) {
	exprdat := []float64{5, 3, 8, 1, 9, 2}

	score, disp, err := MeanZ(exprdat, []float64{5, 8})
	require.NoError(t, err)
	assert.InDelta(t, 0.6149, score, 1e-3)
	assert.InDelta(t, 2.9814, disp, 1e-3)

	_, _, err = MeanZ([]float64{4, 4, 4}, []float64{4})
	assert.ErrorIs(t, err, ErrDegenerateDispersion)
}

func TestRobustStd(t *testing.T) {
	exprdat := []float64{5, 3, 8, 1, 9, 2}

	score, disp, err := RobustStd(exprdat, []float64{5, 8})
	require.NoError(t, err)
	assert.InDelta(t, 0.6745, score, 1e-3)
	assert.InDelta(t, 3.7065, disp, 1e-3)

	_, _, err = RobustStd([]float64{4, 4, 4}, []float64{4})
	assert.ErrorIs(t, err, ErrDegenerateDispersion)
}

func TestRankBiasedOverlap(t *testing.T) {
	su := Series{
		Genes:  []string{"A", "D", "B", "C"},
		Values: []float64{4, 3, 2, 1},
	}
	genes := []string{"A", "B", "C"}

	// limit=1 stops after the length-2 prefix: {A}->1, {A,D}->1
	score, disp := RankBiasedOverlap(su, genes, 1)
	assert.Equal(t, 2.0, score)
	assert.InDelta(t, 1.4826, disp, 1e-4)

	// a large limit walks every prefix: 1+1+2+3
	score, _ = RankBiasedOverlap(su, genes, DefaultRBODepth)
	assert.Equal(t, 7.0, score)
}

func TestSingscore(t *testing.T) {
	// mean rank 5 over a six-gene library
	score, _, err := Singscore(6, []float64{4, 5, 6}, 3, NormStandard)
	require.NoError(t, err)
	assert.InDelta(t, 5.0/6.0-0.5, score, 1e-9)

	// top-ranked signature saturates the theoretical bound
	score, _, err = Singscore(6, []float64{4, 5, 6}, 3, NormTheoretical)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, score, 1e-9)

	_, _, err = Singscore(6, []float64{1}, 1, NormMethod("bogus"))
	assert.ErrorIs(t, err, ErrUnknownNormalization)
}

func TestSingscoreStaysBounded(t *testing.T) {
	// standard normalization of mean ranks lands in [0,1] before the 0.5
	// shift, so the score must stay within [-0.5, 0.5]
	for trial := 0; trial < 50; trial++ {
		libLen := 10 + rand.IntN(90)
		sigLen := 1 + rand.IntN(libLen)
		su := make([]float64, sigLen)
		for i := range su {
			su[i] = float64(1 + rand.IntN(libLen))
		}
		score, _, err := Singscore(libLen, su, sigLen, NormStandard)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, -0.5)
		assert.LessOrEqual(t, score, 0.5)
	}
}

func TestSelectMethodDispatch(t *testing.T) {
	table := testTable(t)
	params := DefaultMethodParams()

	score, disp, err := SelectMethod(table, ColCounts, []string{"A", "C"}, MethodSummedUp, params)
	require.NoError(t, err)
	assert.Equal(t, 13.0, score)
	assert.InDelta(t, 2.2239, disp, 1e-4)

	_, _, err = SelectMethod(table, ColCounts, []string{"A"}, Method("nope"), params)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestParseMethodAndMode(t *testing.T) {
	for _, m := range Methods() {
		got, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMethod("bogus")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	mode, err := ParseMode("BOTH")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, mode)
	_, err = ParseMode("SIDEWAYS")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestScoreFunSingleModesMatchSelector(t *testing.T) {
	table := testTable(t)
	params := DefaultMethodParams()

	for _, tc := range []struct {
		gs     GeneSet
		ranked bool
		col    Column
		genes  []string
	}{
		{GeneSet{Name: "s1", Mode: ModeUp, GenesUp: []string{"A", "C"}}, false, ColCounts, []string{"A", "C"}},
		{GeneSet{Name: "s2", Mode: ModeDn, GenesDn: []string{"D", "F"}}, false, ColCounts, []string{"D", "F"}},
		{GeneSet{Name: "s3", Mode: ModeUp, GenesUp: []string{"A", "C"}}, true, ColUpRank, []string{"A", "C"}},
		{GeneSet{Name: "s4", Mode: ModeDn, GenesDn: []string{"D", "F"}}, true, ColDnRank, []string{"D", "F"}},
	} {
		res, err := ScoreFun(tc.gs, table, MethodSummedUp, params, "cell-1", tc.ranked)
		require.NoError(t, err)

		wantScore, wantVar, err := SelectMethod(table, tc.col, tc.genes, MethodSummedUp, params)
		require.NoError(t, err)

		assert.Equal(t, wantScore, res.Score, tc.gs.Name)
		assert.Equal(t, wantVar, res.Var, tc.gs.Name)
		assert.Equal(t, "cell-1", res.Barcode)
		assert.Equal(t, tc.gs.Name, res.Name)
		assert.Equal(t, tc.gs.Mode, res.Mode)
	}
}

func TestScoreFunBothSums(t *testing.T) {
	table := testTable(t)
	params := DefaultMethodParams()

	gs := GeneSet{
		Name:    "both",
		Mode:    ModeBoth,
		GenesUp: []string{"A", "C"},
		GenesDn: []string{"D", "F"},
	}

	for _, ranked := range []bool{false, true} {
		upCol, dnCol := ColCounts, ColCounts
		if ranked {
			upCol, dnCol = ColUpRank, ColDnRank
		}

		res, err := ScoreFun(gs, table, MethodSummedUp, params, "cell-1", ranked)
		require.NoError(t, err)

		upScore, upVar, err := SelectMethod(table, upCol, gs.GenesUp, MethodSummedUp, params)
		require.NoError(t, err)
		dnScore, dnVar, err := SelectMethod(table, dnCol, gs.GenesDn, MethodSummedUp, params)
		require.NoError(t, err)

		assert.Equal(t, upScore+dnScore, res.Score, "ranked=%v", ranked)
		assert.Equal(t, upVar+dnVar, res.Var, "ranked=%v", ranked)
	}
}

func TestScoreFunErrors(t *testing.T) {
	table := testTable(t)
	params := DefaultMethodParams()

	_, err := ScoreFun(GeneSet{Name: "b", Mode: ModeBoth, GenesUp: []string{"A"}}, table, MethodSummedUp, params, "c", false)
	assert.ErrorIs(t, err, ErrBothModeEmptySide)

	_, err = ScoreFun(GeneSet{Name: "m", Mode: Mode("SIDEWAYS")}, table, MethodSummedUp, params, "c", false)
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = ScoreFun(GeneSet{Name: "u", Mode: ModeUp, GenesUp: []string{"A"}}, table, Method("nope"), params, "c", false)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	unranked, err := NewExpressionTable([]string{"A"}, []float64{1}, nil, nil)
	require.NoError(t, err)
	_, err = ScoreFun(GeneSet{Name: "r", Mode: ModeUp, GenesUp: []string{"A"}}, unranked, MethodSummedUp, params, "c", true)
	assert.ErrorIs(t, err, ErrMissingRankColumns)
}

func BenchmarkScoreFun(b *testing.B) {
	sizes := []struct {
		libGenes int
		sigGenes int
	}{
		{2000, 50},
		{20000, 200},
	}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Lib%d_Sig%d", size.libGenes, size.sigGenes), func(b *testing.B) {
			genes := make([]string, size.libGenes)
			counts := make([]float64, size.libGenes)
			for i := range genes {
				genes[i] = fmt.Sprintf("G%05d", i)
				counts[i] = rand.Float64() * 100
			}
			table, err := NewExpressionTable(genes, counts, nil, nil)
			if err != nil {
				b.Fatal(err)
			}

			gs := GeneSet{Name: "bench", Mode: ModeUp, GenesUp: genes[:size.sigGenes]}
			params := DefaultMethodParams()

			b.ResetTimer()
			for b.Loop() {
				if _, err := ScoreFun(gs, table, MethodMeanZ, params, "cell-0", false); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
