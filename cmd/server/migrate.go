package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tasktrack/tasktrack-api/internal/platform/postgres"
)

// runMigration executes the migration command named by the -migrate flag.
func runMigration(ctx context.Context, db *sql.DB, cmd string) error {
	switch cmd {
	case "up":
		return postgres.MigrateUp(ctx, db)
	case "down":
		return postgres.MigrateDown(ctx, db)
	case "status":
		return postgres.MigrationStatus(ctx, db)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, or status)", cmd)
	}
}
