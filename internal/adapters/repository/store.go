// Package repository defines the session store interface and its in-memory
// implementation.
package repository

import (
	"context"

	"github.com/okian/lobby/internal/domain/model"
)

// Store provides read/write access to lobby sessions.
type Store interface {
	// Get returns the session with id. Returns ErrNotFound if it is unknown
	// or expired.
	Get(ctx context.Context, id string) (*model.Session, error)

	// Put inserts or replaces a session.
	Put(ctx context.Context, s *model.Session) error

	// Delete removes a session; unknown ids are ignored.
	Delete(ctx context.Context, id string)

	// Count returns the number of live sessions.
	Count(ctx context.Context) int
}
