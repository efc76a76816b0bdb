package analysis

import (
	"context"

	domain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/analysis"
	sessiondomain "github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// RequestPublisher hands an analysis request to the worker fleet.
type RequestPublisher interface {
	PublishAnalysisRequested(ctx context.Context, sessionID common.ID) error
}

// Trigger is the API-side counterpart of the Orchestrator: it records that a
// run was requested and dispatches it to a worker, without executing any of
// the pipeline itself.
type Trigger struct {
	sessions     sessiondomain.Repository
	analysisRepo domain.Repository
	publisher    RequestPublisher
	logger       logging.Logger
}

// NewTrigger wires a Trigger.
func NewTrigger(
	sessions sessiondomain.Repository,
	analysisRepo domain.Repository,
	publisher RequestPublisher,
	log logging.Logger,
) *Trigger {
	return &Trigger{
		sessions:     sessions,
		analysisRepo: analysisRepo,
		publisher:    publisher,
		logger:       log.Named("analysis_trigger"),
	}
}

// Start requests an analysis run for the session. The pending result row is
// created (or a previous non-complete row reset) before the request is
// published, so a status poll immediately after returns pending rather than
// not-found. A completed analysis is never re-run.
func (t *Trigger) Start(ctx context.Context, sessionID common.ID) (*domain.Result, error) {
	if _, err := t.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	result, err := t.pendingResult(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := t.publisher.PublishAnalysisRequested(ctx, sessionID); err != nil {
		// The row stays pending; the client can retrigger once the broker
		// is reachable again.
		return nil, err
	}

	t.logger.Info("analysis requested",
		logging.String("session_id", sessionID.String()),
		logging.String("analysis_id", result.ID.String()))
	return result, nil
}

// Get returns the session's analysis result, or CodeAnalysisNotFound.
func (t *Trigger) Get(ctx context.Context, sessionID common.ID) (*domain.Result, error) {
	return t.analysisRepo.GetBySession(ctx, sessionID)
}

func (t *Trigger) pendingResult(ctx context.Context, sessionID common.ID) (*domain.Result, error) {
	existing, err := t.analysisRepo.GetBySession(ctx, sessionID)
	switch {
	case err == nil:
		if err := existing.Reset(); err != nil {
			return nil, err
		}
		if err := t.analysisRepo.Update(ctx, existing); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "reset analysis result")
		}
		return existing, nil
	case errors.IsCode(err, errors.CodeAnalysisNotFound):
		fresh := domain.NewResult(sessionID)
		if err := t.analysisRepo.Create(ctx, fresh); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "create analysis result")
		}
		return fresh, nil
	default:
		return nil, err
	}
}
