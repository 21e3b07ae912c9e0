package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// SqlxQuerier is what a repository runs statements against. Both *sqlx.DB
// and *sqlx.Tx satisfy it.
type SqlxQuerier interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// InitSQLite opens an embedded SQLite database with foreign keys enforced on
// every connection. path may be ":memory:".
func InitSQLite(path string) (*sqlx.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on"
	} else {
		dsn += "?_foreign_keys=on"
	}

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// SQLite serializes writers; one connection also keeps ":memory:" alive
	// as a single database.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite failed: %w", err)
	}

	return db, nil
}
