// Package gateway defines the AI gateway contract: the four model calls the
// analysis pipeline makes (classification, property-data extraction, risk
// detection, strengths/weaknesses) and the conversion of raw model output
// into domain findings.
package gateway

import (
	"context"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/document"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Truncation limits
// ─────────────────────────────────────────────────────────────────────────────

// Per-call input caps, in runes of extracted text. Documents routinely exceed
// model context budgets; each call sees at most the prefix it needs.
const (
	ClassifyTextLimit  = 3000
	ExtractTextLimit   = 8000
	RisksTextLimit     = 8000
	StrengthsTextLimit = 6000
)

// Truncate caps text at limit runes.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// ─────────────────────────────────────────────────────────────────────────────
// Model output types
// ─────────────────────────────────────────────────────────────────────────────

// RiskCandidate is one risk as reported by the model, before validation.
// Category and Severity are raw strings; malformed values are dropped during
// conversion rather than failing the run.
type RiskCandidate struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StrengthsWeaknesses is the model's qualitative property assessment.
type StrengthsWeaknesses struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Gateway interface
// ─────────────────────────────────────────────────────────────────────────────

// Gateway is the AI provider abstraction. Implementations redact PII and
// truncate input before any call leaves the process.
type Gateway interface {
	// ClassifyDocument determines the document's real-estate role from its
	// text. Unrecognized model output maps to document.TypeOther.
	ClassifyDocument(ctx context.Context, text string) (document.Type, error)

	// ExtractPropertyData pulls structured property fields (address, asking
	// price, energy label, ...) out of the document text.
	ExtractPropertyData(ctx context.Context, text string, docType document.Type) (common.Metadata, error)

	// DetectRisks reports the risks the model finds in the document.
	DetectRisks(ctx context.Context, text string, docType document.Type) ([]RiskCandidate, error)

	// IdentifyStrengthsWeaknesses produces the buyer-facing qualitative
	// assessment from the text and the already-extracted property data.
	IdentifyStrengthsWeaknesses(ctx context.Context, text string, propertyData common.Metadata) (StrengthsWeaknesses, error)
}

// FindingsFromCandidates validates raw model risks into domain findings.
// Candidates with an unknown category or severity are dropped silently; the
// model is advisory and a single bad row must not fail the run.
func FindingsFromCandidates(candidates []RiskCandidate) []risk.Finding {
	findings := make([]risk.Finding, 0, len(candidates))
	for _, c := range candidates {
		category, err := risk.ParseCategory(c.Category)
		if err != nil {
			continue
		}
		severity, err := risk.ParseSeverity(c.Severity)
		if err != nil {
			continue
		}
		findings = append(findings, risk.Finding{
			Category:    category,
			Severity:    severity,
			Title:       c.Title,
			Description: c.Description,
			Source:      risk.SourceAIExtraction,
		})
	}
	return findings
}
