// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database. Tests using it skip automatically unless
// DATABASE_URL (or TASKTRACK_TEST_DB_URL) points at a reachable instance.
package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/platform/postgres"
)

// Timeout bounds individual test database operations.
const Timeout = 5 * time.Second

// URL returns the test database URL, checking DATABASE_URL first and
// TASKTRACK_TEST_DB_URL as a fallback. Empty means no database is available.
func URL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("TASKTRACK_TEST_DB_URL")
}

// Open connects to the test database and ensures the schema is migrated. It
// skips the test when no database URL is configured and closes the
// connection during test cleanup.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := URL()
	if url == "" {
		t.Skip("integration test requires DATABASE_URL")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "test database unreachable")
	require.NoError(t, postgres.MigrateUp(ctx, db), "failed to migrate test database")

	return db
}

// Reset truncates all application tables so each test starts from an empty
// database. Identity sequences restart as well.
func Reset(t *testing.T, db *sql.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()

	_, err := db.ExecContext(ctx, "TRUNCATE TABLE tasks, users RESTART IDENTITY CASCADE")
	require.NoError(t, err, "failed to reset test database")
}
