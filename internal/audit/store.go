package audit

import "context"

// Store is the append-only persistence contract for audit entries. Read
// methods return entries newest first with ActorName resolved where the
// acting identity still exists; zero matches yield an empty slice.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListByRecord(ctx context.Context, workflow, recordID string) ([]Entry, error)
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
