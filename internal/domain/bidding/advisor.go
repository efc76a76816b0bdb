package bidding

import (
	"fmt"
	"math"
	"strings"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
)

// ─────────────────────────────────────────────────────────────────────────────
// Multiplier bands
// ─────────────────────────────────────────────────────────────────────────────

// band holds the min/max/recommended multipliers of a strategy as fractions
// of the asking price.
type band struct {
	min, max, recommended float64
}

// fullBands are the risk/market-adjusted bands used once enrichment is
// available. Each multiplier is shifted by the combined risk and market
// adjustment before being applied.
var fullBands = map[Strategy]band{
	StrategyConservative: {min: 0.88, max: 0.95, recommended: 0.92},
	StrategyCompetitive:  {min: 0.96, max: 1.04, recommended: 1.00},
	StrategyAggressive:   {min: 1.02, max: 1.13, recommended: 1.07},
}

// preliminaryBands are the fixed bands of the degenerate mode: the initial
// estimate produced before market enrichment completes. They are superseded
// by Generate once enrichment data is in.
var preliminaryBands = map[Strategy]band{
	StrategyConservative: {min: 0.90, max: 0.97, recommended: 0.93},
	StrategyCompetitive:  {min: 0.97, max: 1.05, recommended: 1.00},
	StrategyAggressive:   {min: 1.03, max: 1.15, recommended: 1.08},
}

// ─────────────────────────────────────────────────────────────────────────────
// Advisor
// ─────────────────────────────────────────────────────────────────────────────

// Generate produces the full advice set for an asking price, adjusted for the
// overall risk score and, when available, the area price index from market
// data. It is pure and deterministic.
//
// The caller must guard askingPrice > 0; the advisor is not invoked for
// missing or non-positive asking prices.
func Generate(askingPrice float64, score risk.Score, marketData map[string]interface{}) AdviceSet {
	baseAdj := riskAdjustment(score.OverallScore) + marketAdjustment(marketData)

	advice := make(AdviceSet, len(Strategies))
	for _, s := range Strategies {
		b := fullBands[s]
		advice[s] = Advice{
			Strategy:         s,
			MinPrice:         math.Round(askingPrice * (b.min + baseAdj)),
			MaxPrice:         math.Round(askingPrice * (b.max + baseAdj)),
			RecommendedPrice: math.Round(askingPrice * (b.recommended + baseAdj)),
			Explanation:      explanation(s, score),
		}
	}
	return advice
}

// Preliminary produces the degenerate-mode advice set: fixed bands, no risk
// or market adjustment, generic explanations. Used for the first scoring pass
// before enrichment data is available.
func Preliminary(askingPrice float64) AdviceSet {
	explanations := map[Strategy]string{
		StrategyConservative: "Conservative strategy: bid below asking price, suitable for properties with significant risks or in a buyer's market.",
		StrategyCompetitive:  "Competitive strategy: bid around asking price. Balanced approach for average market conditions.",
		StrategyAggressive:   "Aggressive strategy: bid above asking price. Suitable for high-demand properties or in a strong seller's market.",
	}

	advice := make(AdviceSet, len(Strategies))
	for _, s := range Strategies {
		b := preliminaryBands[s]
		advice[s] = Advice{
			Strategy:         s,
			MinPrice:         math.Round(askingPrice * b.min),
			MaxPrice:         math.Round(askingPrice * b.max),
			RecommendedPrice: math.Round(askingPrice * b.recommended),
			Explanation:      explanations[s],
		}
	}
	return advice
}

// riskAdjustment is a step function of the overall score: higher risk lowers
// both the bid floor and ceiling uniformly across all strategies.
func riskAdjustment(overallScore float64) float64 {
	switch {
	case overallScore >= 75:
		return -0.05
	case overallScore >= 50:
		return -0.03
	case overallScore >= 25:
		return -0.01
	default:
		return 0.0
	}
}

// marketAdjustment reads the area price index from market data: a heated
// market (index above 110) pushes bids up, a cooling one (below 95) pushes
// them down. Missing or non-numeric data yields no adjustment.
func marketAdjustment(marketData map[string]interface{}) float64 {
	if marketData == nil {
		return 0.0
	}
	stats, ok := marketData["area_statistics"].(map[string]interface{})
	if !ok {
		return 0.0
	}
	idx, ok := toFloat(stats["price_index"])
	if !ok {
		return 0.0
	}
	switch {
	case idx > 110:
		return 0.02
	case idx < 95:
		return -0.02
	default:
		return 0.0
	}
}

// toFloat coerces the numeric types a JSON decoder or map literal may carry.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Explanations
// ─────────────────────────────────────────────────────────────────────────────

// explanation builds the strategy's explanation text, appending the
// risk-contextual sentence when the overall score crosses the strategy's
// threshold: conservative mentions the risk score at >= 50, competitive
// mentions the low risk profile below 30, aggressive below 25.
func explanation(s Strategy, score risk.Score) string {
	var parts []string
	switch s {
	case StrategyConservative:
		parts = append(parts, "Conservative strategy: bid below asking price.")
		if score.OverallScore >= 50 {
			parts = append(parts, fmt.Sprintf(
				"Risk score is %.1f/100 (%s), justifying a lower bid.",
				score.OverallScore, score.Level()))
		}
		parts = append(parts, "This approach is suitable for properties with notable risks or in a buyer's market.")
	case StrategyCompetitive:
		parts = append(parts, "Competitive strategy: bid around asking price.")
		parts = append(parts, "Balanced approach for average market conditions.")
		if score.OverallScore < 30 {
			parts = append(parts, "The low risk profile supports bidding at or near asking price.")
		}
	case StrategyAggressive:
		parts = append(parts, "Aggressive strategy: bid above asking price.")
		parts = append(parts, "Suitable for high-demand properties or when you want to maximize your chances.")
		if score.OverallScore < 25 {
			parts = append(parts, "The property's low risk score makes it a strong candidate for a premium bid.")
		}
	}
	return strings.Join(parts, " ")
}
