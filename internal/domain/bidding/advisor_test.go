package bidding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
)

func scoreOf(overall float64) risk.Score {
	return risk.Score{OverallScore: overall}
}

func marketWithIndex(index interface{}) map[string]interface{} {
	return map[string]interface{}{
		"area_statistics": map[string]interface{}{
			"price_index": index,
		},
	}
}

func TestGenerateProducesAllThreeStrategies(t *testing.T) {
	advice := Generate(400000, scoreOf(10), nil)

	require.Len(t, advice, 3)
	for _, s := range Strategies {
		a, ok := advice[s]
		require.True(t, ok, "missing strategy %s", s)
		assert.Equal(t, s, a.Strategy)
		assert.NotEmpty(t, a.Explanation)
		assert.LessOrEqual(t, a.MinPrice, a.RecommendedPrice)
		assert.LessOrEqual(t, a.RecommendedPrice, a.MaxPrice)
	}
}

func TestGenerateNoAdjustments(t *testing.T) {
	advice := Generate(100000, scoreOf(10), nil)

	assert.Equal(t, 88000.0, advice[StrategyConservative].MinPrice)
	assert.Equal(t, 95000.0, advice[StrategyConservative].MaxPrice)
	assert.Equal(t, 92000.0, advice[StrategyConservative].RecommendedPrice)
	assert.Equal(t, 100000.0, advice[StrategyCompetitive].RecommendedPrice)
	assert.Equal(t, 107000.0, advice[StrategyAggressive].RecommendedPrice)
}

func TestGenerateHighRiskShiftsBandsDown(t *testing.T) {
	// Score >= 75 with no market data: conservative band becomes
	// [0.88-0.05, 0.95-0.05] = [0.83, 0.90] of asking price.
	advice := Generate(100000, scoreOf(80), nil)

	assert.Equal(t, 83000.0, advice[StrategyConservative].MinPrice)
	assert.Equal(t, 90000.0, advice[StrategyConservative].MaxPrice)
}

func TestRiskAdjustmentSteps(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{0, 0.0},
		{24.9, 0.0},
		{25, -0.01},
		{49.9, -0.01},
		{50, -0.03},
		{74.9, -0.03},
		{75, -0.05},
		{100, -0.05},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, riskAdjustment(tt.score), "score %v", tt.score)
	}
}

func TestMarketAdjustment(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want float64
	}{
		{"heated market", marketWithIndex(115.0), 0.02},
		{"cooling market", marketWithIndex(90.0), -0.02},
		{"neutral market", marketWithIndex(100.0), 0.0},
		{"boundary 110", marketWithIndex(110.0), 0.0},
		{"boundary 95", marketWithIndex(95.0), 0.0},
		{"integer index", marketWithIndex(120), 0.02},
		{"non-numeric index", marketWithIndex("high"), 0.0},
		{"nil index", marketWithIndex(nil), 0.0},
		{"no statistics", map[string]interface{}{}, 0.0},
		{"nil market data", nil, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, marketAdjustment(tt.data))
		})
	}
}

func TestGenerateComposesRiskAndMarketAdjustment(t *testing.T) {
	// Risk >= 75 (-0.05) in a heated market (+0.02): net -0.03.
	advice := Generate(100000, scoreOf(80), marketWithIndex(120.0))

	assert.Equal(t, 85000.0, advice[StrategyConservative].MinPrice)
	assert.Equal(t, 97000.0, advice[StrategyCompetitive].RecommendedPrice)
}

func TestGenerateMonotonicInRisk(t *testing.T) {
	market := marketWithIndex(100.0)
	scores := []float64{0, 10, 25, 40, 50, 60, 75, 90, 100}

	for _, s := range Strategies {
		prev := Generate(350000, scoreOf(scores[0]), market)[s].RecommendedPrice
		for _, sc := range scores[1:] {
			cur := Generate(350000, scoreOf(sc), market)[s].RecommendedPrice
			assert.LessOrEqual(t, cur, prev,
				"strategy %s: recommended price rose when risk rose to %v", s, sc)
			prev = cur
		}
	}
}

func TestExplanationThresholds(t *testing.T) {
	t.Run("conservative mentions risk score at >= 50", func(t *testing.T) {
		high := Generate(100000, scoreOf(55), nil)[StrategyConservative].Explanation
		low := Generate(100000, scoreOf(45), nil)[StrategyConservative].Explanation

		assert.Contains(t, high, "55.0/100")
		assert.Contains(t, high, "justifying a lower bid")
		assert.NotContains(t, low, "justifying a lower bid")
	})

	t.Run("competitive mentions low risk below 30", func(t *testing.T) {
		low := Generate(100000, scoreOf(20), nil)[StrategyCompetitive].Explanation
		high := Generate(100000, scoreOf(30), nil)[StrategyCompetitive].Explanation

		assert.Contains(t, low, "low risk profile")
		assert.NotContains(t, high, "low risk profile")
	})

	t.Run("aggressive mentions low risk below 25", func(t *testing.T) {
		low := Generate(100000, scoreOf(10), nil)[StrategyAggressive].Explanation
		high := Generate(100000, scoreOf(25), nil)[StrategyAggressive].Explanation

		assert.Contains(t, low, "premium bid")
		assert.NotContains(t, high, "premium bid")
	})
}

func TestPreliminaryBands(t *testing.T) {
	advice := Preliminary(100000)

	require.Len(t, advice, 3)
	assert.Equal(t, 90000.0, advice[StrategyConservative].MinPrice)
	assert.Equal(t, 97000.0, advice[StrategyConservative].MaxPrice)
	assert.Equal(t, 93000.0, advice[StrategyConservative].RecommendedPrice)
	assert.Equal(t, 100000.0, advice[StrategyCompetitive].RecommendedPrice)
	assert.Equal(t, 115000.0, advice[StrategyAggressive].MaxPrice)
	assert.Equal(t, 108000.0, advice[StrategyAggressive].RecommendedPrice)
}

func TestPricesRoundedToWholeUnits(t *testing.T) {
	advice := Generate(333333, scoreOf(0), nil)

	for _, a := range advice {
		assert.Equal(t, a.MinPrice, float64(int64(a.MinPrice)))
		assert.Equal(t, a.MaxPrice, float64(int64(a.MaxPrice)))
		assert.Equal(t, a.RecommendedPrice, float64(int64(a.RecommendedPrice)))
	}
}
