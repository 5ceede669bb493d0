// Package repository defines the session store interface and errors.
//
// Session records are write-once: Create persists a record exactly once and
// nothing ever mutates it afterwards.
package repository

import (
	"context"

	"github.com/pitchlab/rabona/internal/domain/model"
)

// Store provides create/get access to persisted session records.
type Store interface {
	// Create persists a new session record. Returns ErrAlreadyExists if a
	// record with the same id is already present.
	Create(ctx context.Context, session model.Session) error

	// Get returns the session with the given id.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (model.Session, error)

	// Count returns the number of persisted sessions.
	Count(ctx context.Context) int
}
