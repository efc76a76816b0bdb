// Package analysis implements the analysis bounded context: the result
// aggregate that one session's documents, risk score, and bidding advice hang
// off, and the pipeline status state machine that callers poll for progress.
package analysis

// Status is the pipeline state of an analysis run.
type Status string

const (
	StatusPending    Status = "pending"
	StatusExtracting Status = "extracting"
	StatusAnalyzing  Status = "analyzing"
	StatusEnriching  Status = "enriching"
	StatusScoring    Status = "scoring"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

// allowedTransitions defines the valid next states reachable from each
// status. Failed is reachable from every non-terminal state; complete and
// failed are absorbing.
//
//	pending ──► extracting ──► analyzing ──► scoring ──► complete
//	                                            │   ▲
//	                                            ▼   │
//	                                          enriching
var allowedTransitions = map[Status][]Status{
	StatusPending:    {StatusExtracting, StatusFailed},
	StatusExtracting: {StatusAnalyzing, StatusFailed},
	StatusAnalyzing:  {StatusScoring, StatusFailed},
	// Scoring either completes directly (no enrichment possible) or enters
	// the enrichment pass; enriching returns to scoring for the second pass.
	StatusScoring:   {StatusEnriching, StatusComplete, StatusFailed},
	StatusEnriching: {StatusScoring, StatusFailed},
	// Terminal states: no outgoing transitions.
	StatusComplete: {},
	StatusFailed:   {},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is an absorbing end state.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// ProgressMessage returns the user-facing progress text for a status.
func (s Status) ProgressMessage() string {
	switch s {
	case StatusPending:
		return "Waiting to start..."
	case StatusExtracting:
		return "Extracting text from documents..."
	case StatusAnalyzing:
		return "AI is analyzing your documents..."
	case StatusEnriching:
		return "Enriching with market data..."
	case StatusScoring:
		return "Computing risk scores..."
	case StatusComplete:
		return "Analysis complete!"
	case StatusFailed:
		return "Analysis failed"
	default:
		return "Processing..."
	}
}
