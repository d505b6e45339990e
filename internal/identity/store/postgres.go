package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/identity"
	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/pkg/sentinel"
)

// pgUniqueViolation is the Postgres error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresStore persists identities in Postgres. Uniqueness of email is
// enforced by the database, so concurrent registrations race safely: exactly
// one insert wins and the loser observes sentinel.ErrConflict.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Insert(ctx context.Context, ident identity.Identity) error {
	query := `
		INSERT INTO identities (id, email, full_name, role, department, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		ident.ID,
		strings.ToLower(ident.Email),
		ident.FullName,
		ident.Role,
		ident.Department,
		ident.PasswordHash,
		ident.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (identity.Identity, error) {
	query := `
		SELECT id, email, full_name, role, department, password_hash, created_at
		FROM identities
		WHERE lower(email) = lower($1)
	`
	return s.scanIdentity(s.pool.QueryRow(ctx, query, email))
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	query := `
		SELECT id, email, full_name, role, department, password_hash, created_at
		FROM identities
		WHERE id = $1
	`
	return s.scanIdentity(s.pool.QueryRow(ctx, query, id))
}

func (s *PostgresStore) scanIdentity(row pgx.Row) (identity.Identity, error) {
	var ident identity.Identity
	err := row.Scan(
		&ident.ID,
		&ident.Email,
		&ident.FullName,
		&ident.Role,
		&ident.Department,
		&ident.PasswordHash,
		&ident.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Identity{}, sentinel.ErrNotFound
		}
		return identity.Identity{}, fmt.Errorf("scan identity: %w", err)
	}
	return ident, nil
}
