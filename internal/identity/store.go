package identity

import (
	"context"

	"github.com/google/uuid"
)

// Store is interface-driven to keep services testable and to allow swapping
// the in-memory implementation for Postgres without rewiring business code.
//
// Implementations return sentinel.ErrNotFound for missing rows and
// sentinel.ErrConflict for duplicate emails; email comparison is
// case-insensitive.
type Store interface {
	Insert(ctx context.Context, ident Identity) error
	FindByEmail(ctx context.Context, email string) (Identity, error)
	FindByID(ctx context.Context, id uuid.UUID) (Identity, error)
}
