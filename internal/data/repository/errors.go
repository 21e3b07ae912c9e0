package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned by Update and Delete when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation marks a write the store rejected for
	// referential integrity. The driver error stays wrapped alongside it.
	ErrConstraintViolation = errors.New("constraint violation")
)

// foreign_key_violation
const pgForeignKeyViolation = "23503"

func classifyPg(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return err
}

func classifySQLite(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	}
	return err
}
