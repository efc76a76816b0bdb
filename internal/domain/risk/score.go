package risk

import (
	"fmt"
	"math"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scoring tables
// ─────────────────────────────────────────────────────────────────────────────

// severityPoints maps each severity to its fixed point contribution.
// Accumulation is a running sum per category; duplicates add again.
var severityPoints = map[Severity]float64{
	SeverityLow:      5,
	SeverityMedium:   15,
	SeverityHigh:     30,
	SeverityCritical: 50,
}

// categoryWeights maps each category to its share of the overall score.
// Invariant: the weights sum to exactly 1.0.
var categoryWeights = map[Category]float64{
	CategoryStructural: 0.30,
	CategoryLegal:      0.20,
	CategoryFinancial:  0.25,
	CategoryMarket:     0.25,
}

// categoryCap clamps each per-category accumulator. Clamp, not scale: three
// critical structural findings score 100, not 150.
const categoryCap = 100.0

func init() {
	var sum float64
	for _, c := range Categories {
		sum += categoryWeights[c]
	}
	if math.Abs(sum-1.0) > 1e-9 {
		panic(fmt.Sprintf("risk: category weights sum to %v, expected 1.0", sum))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Score
// ─────────────────────────────────────────────────────────────────────────────

// Score is the aggregated result of one scoring run. It is derived, never
// constructed directly: Compute is the only producer, which guarantees the
// invariant that CategoryScores contains every category and that OverallScore
// equals the weighted sum of the category scores rounded to one decimal.
type Score struct {
	// OverallScore is the weighted overall risk in [0, 100], one decimal.
	OverallScore float64 `json:"overall_score"`

	// CategoryScores holds the capped per-category scores in [0, 100].
	// All four categories are always present.
	CategoryScores map[Category]float64 `json:"category_scores"`

	// Findings is the input collection, retained verbatim.
	Findings []Finding `json:"findings"`
}

// Level derives the risk tier from the overall score. Boundaries are
// inclusive on the lower tier: exactly 25 is low, exactly 50 moderate,
// exactly 75 high.
func (s Score) Level() Level {
	switch {
	case s.OverallScore <= 25:
		return LevelLow
	case s.OverallScore <= 50:
		return LevelModerate
	case s.OverallScore <= 75:
		return LevelHigh
	default:
		return LevelCritical
	}
}

// Compute aggregates a collection of findings into a Score. It is pure,
// deterministic, and total: an empty or nil input yields a zero score.
//
// Algorithm: zero-initialize an accumulator for all four categories, add the
// severity points of every finding to its category (no deduplication, no
// ordering sensitivity), clamp each category at 100, then take the weighted
// sum rounded to one decimal.
func Compute(findings []Finding) Score {
	points := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		points[c] = 0
	}

	for _, f := range findings {
		points[f.Category] += severityPoints[f.Severity]
	}

	scores := make(map[Category]float64, len(Categories))
	var overall float64
	for _, c := range Categories {
		capped := math.Min(categoryCap, points[c])
		scores[c] = capped
		overall += capped * categoryWeights[c]
	}

	return Score{
		OverallScore:   round1(overall),
		CategoryScores: scores,
		Findings:       findings,
	}
}

// round1 rounds to one decimal place.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
