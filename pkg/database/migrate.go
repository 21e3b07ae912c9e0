package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	//go:embed schema/postgres.sql
	postgresSchema string

	//go:embed schema/sqlite.sql
	sqliteSchema string
)

// MigratePostgres creates the customers, items and reviews tables if absent.
func MigratePostgres(ctx context.Context, db PgxIface) error {
	for i, stmt := range statements(postgresSchema) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// MigrateSQLite is MigratePostgres for the embedded driver.
func MigrateSQLite(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range statements(sqliteSchema) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

func statements(schema string) []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
