// Package repositories provides the PostgreSQL-backed implementations of the
// domain repository interfaces. Every query is parameterised and accepts a
// context for cancellation.
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/domain/session"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/internal/infrastructure/monitoring/logging"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/errors"
	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// SessionRepository persists sessions in the sessions table.
type SessionRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

var _ session.Repository = (*SessionRepository)(nil)

// NewSessionRepository builds a SessionRepository on the shared pool.
func NewSessionRepository(pool *pgxpool.Pool, log logging.Logger) *SessionRepository {
	return &SessionRepository{pool: pool, logger: log.Named("session_repo")}
}

func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (id, created_at, expires_at) VALUES ($1, $2, $3)`,
		sess.ID, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "insert session")
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id common.ID) (*session.Session, error) {
	var sess session.Session
	err := r.pool.QueryRow(ctx,
		`SELECT id, created_at, expires_at FROM sessions WHERE id = $1`, id).
		Scan(&sess.ID, &sess.CreatedAt, &sess.ExpiresAt)
	if err == pgx.ErrNoRows {
		return nil, errors.Newf(errors.CodeNotFound, "session %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "select session")
	}
	return &sess, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id common.ID) error {
	// Documents and analysis results cascade via foreign keys.
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "delete session")
	}
	return nil
}
