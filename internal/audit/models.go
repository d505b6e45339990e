// Package audit records an append-only trail of who changed what and when.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Actions callers attach to entries. The recorder does not interpret them.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entry is one immutable audit record. Once written it is never mutated or
// deleted; the actor is a weak reference resolved at read time.
type Entry struct {
	ID        uuid.UUID      `json:"id"`
	Workflow  string         `json:"workflow"`
	RecordID  string         `json:"record_id"`
	Action    string         `json:"action"`
	ActorID   uuid.UUID      `json:"actor_id,omitempty"`
	ActorName string         `json:"actor_name,omitempty"`
	Changes   map[string]any `json:"changes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
