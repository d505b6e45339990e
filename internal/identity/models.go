// Package identity holds the user principal model and its store contract.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is a user principal. The role is a free-form string consumed by
// callers for authorization decisions; this package does not interpret it.
type Identity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	Department   string    `json:"department,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
