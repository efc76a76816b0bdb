// Package risk implements the risk bounded context: categorized findings,
// the weighted scoring aggregator, and the market-derived finding rules.
// Everything in this package is pure computation; persistence and AI
// extraction are handled by separate layers.
package risk

import (
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Category
// ─────────────────────────────────────────────────────────────────────────────

// Category classifies a finding into one of the four fixed risk dimensions.
// The set is closed: scoring weights are defined exhaustively over it.
type Category string

const (
	CategoryStructural Category = "structural"
	CategoryLegal      Category = "legal"
	CategoryFinancial  Category = "financial"
	CategoryMarket     Category = "market"
)

// Categories lists all four categories in their canonical order. Every Score
// contains an entry for each of them, whether or not any finding references it.
var Categories = []Category{
	CategoryStructural,
	CategoryLegal,
	CategoryFinancial,
	CategoryMarket,
}

// ParseCategory converts a raw string (typically AI gateway output) into a
// Category. Unknown values are an error; callers drop the offending item
// rather than propagate the failure.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryStructural, CategoryLegal, CategoryFinancial, CategoryMarket:
		return Category(s), nil
	}
	return "", errors.Newf(errors.CodeValidation, "unknown risk category %q", s)
}

// ─────────────────────────────────────────────────────────────────────────────
// Severity
// ─────────────────────────────────────────────────────────────────────────────

// Severity rates how serious a single finding is. Each severity maps to a
// fixed point contribution in the aggregator.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ParseSeverity converts a raw string into a Severity. Unknown values are an
// error; callers drop the offending item rather than propagate the failure.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(s), nil
	}
	return "", errors.Newf(errors.CodeValidation, "unknown severity %q", s)
}

// ─────────────────────────────────────────────────────────────────────────────
// Level
// ─────────────────────────────────────────────────────────────────────────────

// Level is the risk tier derived from an overall score. It is never stored;
// Score.Level() recomputes it on read.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// ─────────────────────────────────────────────────────────────────────────────
// Finding
// ─────────────────────────────────────────────────────────────────────────────

// Finding is a single categorized, severity-rated risk observation. Findings
// are immutable value objects owned by the scoring run that collected them;
// they carry no identity or lifecycle of their own.
//
// Source is a free-form provenance tag: "ai_extraction" for gateway-detected
// risks, "ep_online" for energy-label derived findings, and so on.
type Finding struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
}

// SourceAIExtraction tags findings produced by the AI gateway's risk
// detection.
const SourceAIExtraction = "ai_extraction"

// SourceEPOnline tags findings derived from the EP-Online energy-label
// registry.
const SourceEPOnline = "ep_online"
