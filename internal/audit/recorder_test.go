package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit"
	auditstore "github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit/store"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/logger"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/metrics"
)

// failingStore always refuses writes, to prove failures stay contained.
type failingStore struct{}

func (failingStore) Append(context.Context, audit.Entry) error {
	return errors.New("store down")
}
func (failingStore) ListByRecord(context.Context, string, string) ([]audit.Entry, error) {
	return nil, nil
}
func (failingStore) ListRecent(context.Context, int) ([]audit.Entry, error) {
	return nil, nil
}

func runRecorder(t *testing.T, store audit.Store, m *metrics.Metrics) *audit.Recorder {
	t.Helper()

	recorder := audit.NewRecorder(store, 16, logger.New(), m)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = recorder.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return recorder
}

func Test_Record_PersistsAsynchronously(t *testing.T) {
	store := auditstore.NewMemoryStore()
	m := metrics.New(prometheus.NewRegistry())
	recorder := runRecorder(t, store, m)

	recorder.Record(audit.Entry{
		Workflow: "access_grants",
		RecordID: "42",
		Action:   audit.ActionUpdate,
		ActorID:  uuid.New(),
		Changes:  map[string]any{"status": "approved"},
	})

	require.Eventually(t, func() bool {
		return store.Len() == 1
	}, 2*time.Second, 10*time.Millisecond)

	entries, err := recorder.History(context.Background(), "access_grants", "42")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEqual(t, uuid.Nil, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.AuditRecorded))
}

func Test_Record_StoreFailureIsSwallowed(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	recorder := runRecorder(t, failingStore{}, m)

	// Must not panic, block, or surface the store error.
	recorder.Record(audit.Entry{Workflow: "onboarding", RecordID: "7", Action: audit.ActionDelete})

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.AuditDropped) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func Test_Record_FullBufferDrops(t *testing.T) {
	store := auditstore.NewMemoryStore()
	m := metrics.New(prometheus.NewRegistry())
	// No worker running: the buffer fills and overflow is dropped.
	recorder := audit.NewRecorder(store, 2, logger.New(), m)

	for i := 0; i < 5; i++ {
		recorder.Record(audit.Entry{Workflow: "staffing", RecordID: "1", Action: audit.ActionCreate})
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.AuditDropped))
	assert.Equal(t, 0, store.Len())
}

func Test_Recent_DefaultsLimit(t *testing.T) {
	store := auditstore.NewMemoryStore()
	for i := 0; i < audit.DefaultRecentLimit+10; i++ {
		require.NoError(t, store.Append(context.Background(), audit.Entry{
			ID:       uuid.New(),
			Workflow: "staffing",
			RecordID: "1",
			Action:   audit.ActionUpdate,
		}))
	}

	recorder := audit.NewRecorder(store, 1, logger.New(), metrics.New(prometheus.NewRegistry()))
	entries, err := recorder.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, audit.DefaultRecentLimit)
}

func Test_History_EmptyResult(t *testing.T) {
	recorder := audit.NewRecorder(auditstore.NewMemoryStore(), 1, logger.New(), metrics.New(prometheus.NewRegistry()))

	entries, err := recorder.History(context.Background(), "staffing", "missing")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}
