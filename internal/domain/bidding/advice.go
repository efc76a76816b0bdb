// Package bidding implements the bidding-advice bounded context: the three
// strategy bands and the pure advisor that adjusts them for risk and market
// conditions.
package bidding

// Strategy identifies one of the three fixed price-recommendation bands.
type Strategy string

const (
	StrategyConservative Strategy = "conservative"
	StrategyCompetitive  Strategy = "competitive"
	StrategyAggressive   Strategy = "aggressive"
)

// Strategies lists the strategies in canonical order. Advice is always
// produced for all of them; a partial set is never emitted.
var Strategies = []Strategy{
	StrategyConservative,
	StrategyCompetitive,
	StrategyAggressive,
}

// Advice is one strategy's price recommendation. Prices are in whole currency
// units (rounded).
type Advice struct {
	Strategy         Strategy `json:"strategy"`
	MinPrice         float64  `json:"min_price"`
	MaxPrice         float64  `json:"max_price"`
	RecommendedPrice float64  `json:"recommended_price"`
	Explanation      string   `json:"explanation"`
}

// AdviceSet maps every strategy to its advice. Exactly three entries.
type AdviceSet map[Strategy]Advice
