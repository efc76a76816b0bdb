package analysis

import (
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/bidding"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/risk"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// Result is the aggregate root tying one session's documents to one risk
// score and one set of bidding advice. It is created once per run, mutated in
// place through the pipeline stages, and becomes immutable once status
// reaches a terminal state.
//
// The risk score and bidding advice contained here are owned exclusively by
// this Result; nothing else aliases them.
type Result struct {
	ID        common.ID `json:"id"`
	SessionID common.ID `json:"session_id"`
	Status    Status    `json:"status"`

	// PropertyData holds the raw attribute mapping extracted by the AI
	// gateway (asking price, address, postal code, year built, ...).
	PropertyData common.Metadata `json:"property_data,omitempty"`

	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`

	RiskScore     *risk.Score       `json:"risk_score,omitempty"`
	MarketData    common.Metadata   `json:"market_data,omitempty"`
	BiddingAdvice bidding.AdviceSet `json:"bidding_advice,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// NewResult creates a pending Result for a session.
func NewResult(sessionID common.ID) *Result {
	return &Result{
		ID:        common.NewID(),
		SessionID: sessionID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Transition moves the result to the next pipeline state, enforcing the
// state machine. Terminal results reject every transition.
func (r *Result) Transition(next Status) error {
	if !r.Status.CanTransition(next) {
		return errors.Newf(errors.CodeAnalysisInvalidTransition,
			"illegal analysis transition %s -> %s", r.Status, next)
	}
	r.Status = next
	return nil
}

// MarkFailed moves the result to the failed terminal state, recording the
// user-facing error message. Failing an already-terminal result is a no-op so
// that late failures in a completed run cannot corrupt it.
func (r *Result) MarkFailed(msg string) {
	if r.Status.IsTerminal() {
		return
	}
	r.Status = StatusFailed
	r.ErrorMessage = msg
	now := time.Now().UTC()
	r.CompletedAt = &now
}

// Reset returns a non-complete result to the pending state so a new run can
// start, clearing any previous failure. Completed results are immutable; the
// session must be deleted to analyze again.
func (r *Result) Reset() error {
	if r.Status == StatusComplete {
		return errors.New(errors.CodeAnalysisAlreadyComplete,
			"analysis already complete; delete the session to re-analyze")
	}
	r.Status = StatusPending
	r.ErrorMessage = ""
	r.CompletedAt = nil
	return nil
}

// MarkComplete moves the result to the complete terminal state and stamps the
// completion timestamp.
func (r *Result) MarkComplete() {
	if r.Status.IsTerminal() {
		return
	}
	r.Status = StatusComplete
	now := time.Now().UTC()
	r.CompletedAt = &now
}

// AskingPrice extracts a positive asking price from the property data.
// Returns 0, false when the price is absent, non-numeric, or non-positive;
// the bidding advisor must not be invoked in that case.
func (r *Result) AskingPrice() (float64, bool) {
	if r.PropertyData == nil {
		return 0, false
	}
	var price float64
	switch v := r.PropertyData["asking_price"].(type) {
	case float64:
		price = v
	case float32:
		price = float64(v)
	case int:
		price = float64(v)
	case int64:
		price = float64(v)
	default:
		return 0, false
	}
	if price <= 0 {
		return 0, false
	}
	return price, true
}

// HasAddress reports whether the property data carries both the address and
// postal code the enrichment pass requires.
func (r *Result) HasAddress() bool {
	if r.PropertyData == nil {
		return false
	}
	addr, _ := r.PropertyData["address"].(string)
	postal, _ := r.PropertyData["postal_code"].(string)
	return addr != "" && postal != ""
}
