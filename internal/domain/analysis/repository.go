package analysis

import (
	"context"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// Repository persists analysis results. The orchestrator updates the result
// row on every state transition so that callers can poll progress mid-run.
type Repository interface {
	// Create inserts a new pending result.
	Create(ctx context.Context, result *Result) error

	// Update persists the current state of the result.
	Update(ctx context.Context, result *Result) error

	// GetBySession returns the result for a session, or a
	// CodeAnalysisNotFound error when none exists.
	GetBySession(ctx context.Context, sessionID common.ID) (*Result, error)

	// DeleteBySession removes the result for a session. Used by the
	// session-deletion cascade; deleting a missing result is not an error.
	DeleteBySession(ctx context.Context, sessionID common.ID) error
}
