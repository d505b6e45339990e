//go:build integration

package containers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/TheNoah-BaseApps/hrdashboard-hr-d84f4443-sub001/internal/platform/database"
)

// PostgresContainer wraps a testcontainers Postgres instance with the schema
// migrated and a pgx pool ready for store tests.
type PostgresContainer struct {
	Container testcontainers.Container
	URL       string
	Pool      *pgxpool.Pool
}

// NewPostgresContainer starts a Postgres container, applies the embedded
// migrations, and registers cleanup on t.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("hr_test"),
		tcpostgres.WithUsername("hr"),
		tcpostgres.WithPassword("hr"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	if err := database.Migrate(ctx, url); err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := database.Connect(ctx, url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(context.Background())
	})

	return &PostgresContainer{Container: container, URL: url, Pool: pool}
}

// TruncateTables empties the given tables between tests.
func (c *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	_, err := c.Pool.Exec(ctx, "TRUNCATE "+strings.Join(tables, ", ")+" CASCADE")
	return err
}
