// Package session implements the session bounded context. A session groups
// the documents a buyer uploads for one property and is the unit of GDPR
// erasure: deleting a session removes everything derived from it.
package session

import (
	"context"
	"time"

	"github.com/McMadA/Home-Buyer-Intelligence-Claude/pkg/types/common"
)

// Session is an anonymous upload session. No account or user identity is
// attached; the ID is the only credential.
type Session struct {
	ID        common.ID  `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// New creates a session with a fresh ID.
func New() *Session {
	return &Session{
		ID:        common.NewID(),
		CreatedAt: time.Now().UTC(),
	}
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Repository persists sessions.
type Repository interface {
	// Create inserts a new session row.
	Create(ctx context.Context, sess *Session) error

	// Get returns the session, or a CodeNotFound error when it does not
	// exist.
	Get(ctx context.Context, id common.ID) (*Session, error)

	// Delete removes the session row. Dependent rows cascade at the
	// database level; callers still remove object storage themselves.
	Delete(ctx context.Context, id common.ID) error
}
