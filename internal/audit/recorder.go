package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/metrics"
)

// DefaultRecentLimit bounds Recent queries when the caller passes no limit.
const DefaultRecentLimit = 50

const appendTimeout = 5 * time.Second

// Recorder appends audit entries through a buffered channel drained by Run.
// The write path is advisory: a full buffer or a failing store drops the
// entry with a log line and a counter bump, and the caller's mutation is
// never affected. Reads go straight to the store.
type Recorder struct {
	store   Store
	inbox   chan Entry
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewRecorder(store Store, buffer int, logger *slog.Logger, m *metrics.Metrics) *Recorder {
	if buffer <= 0 {
		buffer = 256
	}
	return &Recorder{
		store:   store,
		inbox:   make(chan Entry, buffer),
		logger:  logger,
		metrics: m,
	}
}

// Record enqueues one entry, assigning its ID and timestamp when unset. It
// never blocks: when the buffer is full the entry is dropped and counted.
func (r *Recorder) Record(entry Entry) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	select {
	case r.inbox <- entry:
	default:
		r.metrics.AuditDropped.Inc()
		r.logger.Warn("audit buffer full, entry dropped",
			"workflow", entry.Workflow,
			"record_id", entry.RecordID,
			"action", entry.Action,
		)
	}
}

// Run drains the inbox until ctx is cancelled. Store failures are logged and
// counted, never returned, so a flaky store cannot stop the worker.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			r.drain()
			return ctx.Err()
		case entry := <-r.inbox:
			r.append(entry)
		}
	}
}

// drain flushes whatever is already buffered during shutdown.
func (r *Recorder) drain() {
	for {
		select {
		case entry := <-r.inbox:
			r.append(entry)
		default:
			return
		}
	}
}

func (r *Recorder) append(entry Entry) {
	// The triggering request's context is long gone; writes get their own
	// deadline.
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := r.store.Append(ctx, entry); err != nil {
		r.metrics.AuditDropped.Inc()
		r.logger.Error("audit append failed",
			"error", err,
			"workflow", entry.Workflow,
			"record_id", entry.RecordID,
		)
		return
	}
	r.metrics.AuditRecorded.Inc()
}

// History returns the trail for one record, newest first.
func (r *Recorder) History(ctx context.Context, workflow, recordID string) ([]Entry, error) {
	return r.store.ListByRecord(ctx, workflow, recordID)
}

// Recent returns the latest entries across all workflows, newest first.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return r.store.ListRecent(ctx, limit)
}
