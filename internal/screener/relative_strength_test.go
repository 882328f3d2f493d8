package screener

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbench/stock-screener/pkg/types"
)

// growthBars compounds a fixed daily growth rate over n bars.
func growthBars(n int, dailyGrowth float64) []types.OHLCV {
	closes := make([]float64, n)
	price := 100.0
	for i := range closes {
		closes[i] = price
		price *= 1 + dailyGrowth
	}
	return barsFromCloses(closes)
}

func TestRank_StrongerSymbolRanksHigher(t *testing.T) {
	ranker := NewRelativeStrengthRanker(DefaultRSConfig(), nil)

	universe := map[string][]types.OHLCV{
		"FAST": growthBars(300, 0.003),
		"MID":  growthBars(300, 0.001),
		"SLOW": growthBars(300, 0.0002),
	}
	benchmark := growthBars(300, 0.0005)

	scores := ranker.Rank(universe, benchmark)

	require.Len(t, scores, 3)
	assert.Greater(t, scores["FAST"], scores["MID"])
	assert.Greater(t, scores["MID"], scores["SLOW"])
	for _, score := range scores {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestRank_DeterministicAcrossRuns(t *testing.T) {
	ranker := NewRelativeStrengthRanker(DefaultRSConfig(), nil)

	universe := map[string][]types.OHLCV{
		"AAAA": growthBars(300, 0.002),
		"BBBB": growthBars(300, 0.001),
		"CCCC": growthBars(300, 0.0015),
		"DDDD": growthBars(300, 0.0005),
	}
	benchmark := growthBars(300, 0.001)

	first := ranker.Rank(universe, benchmark)
	for i := 0; i < 10; i++ {
		again := ranker.Rank(universe, benchmark)
		assert.Equal(t, first, again)
	}
}

func TestRank_InsufficientSymbolSkipped(t *testing.T) {
	ranker := NewRelativeStrengthRanker(DefaultRSConfig(), nil)

	universe := map[string][]types.OHLCV{
		"FULL1": growthBars(300, 0.002),
		"FULL2": growthBars(300, 0.001),
		"SHORT": growthBars(100, 0.005),
	}
	benchmark := growthBars(300, 0.001)

	scores := ranker.Rank(universe, benchmark)

	require.Len(t, scores, 2)
	_, found := scores["SHORT"]
	assert.False(t, found)
}

func TestRank_FewerThanTwoScoredYieldsEmpty(t *testing.T) {
	ranker := NewRelativeStrengthRanker(DefaultRSConfig(), nil)

	universe := map[string][]types.OHLCV{
		"ONLY":  growthBars(300, 0.002),
		"SHORT": growthBars(50, 0.002),
	}
	benchmark := growthBars(300, 0.001)

	scores := ranker.Rank(universe, benchmark)
	assert.Empty(t, scores)
}

func TestRank_ShortBenchmarkYieldsEmpty(t *testing.T) {
	ranker := NewRelativeStrengthRanker(DefaultRSConfig(), nil)

	universe := map[string][]types.OHLCV{
		"AAAA": growthBars(300, 0.002),
		"BBBB": growthBars(300, 0.001),
	}

	scores := ranker.Rank(universe, growthBars(100, 0.001))
	assert.Empty(t, scores)
}

func TestRank_FlatBenchmarkYieldsEmpty(t *testing.T) {
	ranker := NewRelativeStrengthRanker(DefaultRSConfig(), nil)

	universe := map[string][]types.OHLCV{
		"AAAA": growthBars(300, 0.002),
		"BBBB": growthBars(300, 0.001),
	}

	// A perfectly flat benchmark scores exactly zero.
	scores := ranker.Rank(universe, growthBars(300, 0))
	assert.Empty(t, scores)
}

func TestRankSimple_SingleWindowPercentiles(t *testing.T) {
	ranker := NewRelativeStrengthRanker(DefaultRSConfig(), nil)

	universe := map[string][]types.OHLCV{
		"UP":   growthBars(80, 0.003),
		"FLAT": growthBars(80, 0),
		"DOWN": growthBars(80, -0.002),
	}

	scores := ranker.RankSimple(universe)

	require.Len(t, scores, 3)
	assert.Greater(t, scores["UP"], scores["FLAT"])
	assert.Greater(t, scores["FLAT"], scores["DOWN"])
}

func TestPercentileRanks_AverageRankTies(t *testing.T) {
	raw := map[string]float64{
		"A": 10,
		"B": 20,
		"C": 20,
		"D": 30,
	}

	out := percentileRanks(raw)

	require.Len(t, out, 4)
	// Ranks 2 and 3 average to 2.5 out of 4.
	assert.InDelta(t, 25.0, out["A"], 1e-9)
	assert.InDelta(t, 62.5, out["B"], 1e-9)
	assert.InDelta(t, 62.5, out["C"], 1e-9)
	assert.InDelta(t, 100.0, out["D"], 1e-9)
}

func TestPercentileRanks_Singleton(t *testing.T) {
	out := percentileRanks(map[string]float64{"A": 1})
	assert.Empty(t, out)
}

func TestWeightedScore_MatchesManualBlend(t *testing.T) {
	cfg := DefaultRSConfig()
	ranker := NewRelativeStrengthRanker(cfg, nil)

	data := growthBars(300, 0.001)
	score, ok := ranker.weightedScore(data)
	require.True(t, ok)

	expected := 0.0
	for i, window := range cfg.Windows {
		ret, retOK := types.TrailingReturn(data, window)
		require.True(t, retOK)
		expected += cfg.Weights[i] * ret
	}
	assert.InDelta(t, expected, score, 1e-12)
}
