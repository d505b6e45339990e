package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/audit"
)

// PostgresStore persists audit entries. The actor is stored as a nullable
// uuid so entries survive account deletion; reads LEFT JOIN identities and
// substitute an empty name when the actor is gone.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, entry audit.Entry) error {
	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("marshal audit changes: %w", err)
	}

	var actorID *uuid.UUID
	if entry.ActorID != uuid.Nil {
		actorID = &entry.ActorID
	}

	query := `
		INSERT INTO audit_entries (id, workflow, record_id, action, actor_id, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.pool.Exec(ctx, query,
		entry.ID,
		entry.Workflow,
		entry.RecordID,
		entry.Action,
		actorID,
		changes,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRecord(ctx context.Context, workflow, recordID string) ([]audit.Entry, error) {
	query := `
		SELECT a.id, a.workflow, a.record_id, a.action, a.actor_id,
		       COALESCE(i.full_name, ''), a.changes, a.created_at
		FROM audit_entries a
		LEFT JOIN identities i ON i.id = a.actor_id
		WHERE a.workflow = $1 AND a.record_id = $2
		ORDER BY a.created_at DESC
	`
	rows, err := s.pool.Query(ctx, query, workflow, recordID)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]audit.Entry, error) {
	query := `
		SELECT a.id, a.workflow, a.record_id, a.action, a.actor_id,
		       COALESCE(i.full_name, ''), a.changes, a.created_at
		FROM audit_entries a
		LEFT JOIN identities i ON i.id = a.actor_id
		ORDER BY a.created_at DESC
		LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	return s.scanEntries(rows)
}

func (s *PostgresStore) scanEntries(rows pgx.Rows) ([]audit.Entry, error) {
	entries := []audit.Entry{}

	for rows.Next() {
		var (
			entry   audit.Entry
			actorID *uuid.UUID
			changes []byte
		)
		err := rows.Scan(
			&entry.ID,
			&entry.Workflow,
			&entry.RecordID,
			&entry.Action,
			&actorID,
			&entry.ActorName,
			&changes,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		if actorID != nil {
			entry.ActorID = *actorID
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &entry.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal audit changes: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
