package repository

import (
	"context"
	"fmt"

	"customer-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository struct {
	Customer CustomerRepository
	Item     ItemRepository
	Review   ReviewRepository

	ping     func(ctx context.Context) error
	readOnly func(ctx context.Context, fn func(repo *Repository) error) error
}

// NewRepository builds the PostgreSQL-backed repositories.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newPgRepository(db, log)
	repo.ping = db.Ping
	repo.readOnly = func(ctx context.Context, fn func(repo *Repository) error) error {
		tx, err := db.BeginTx(ctx, pgx.TxOptions{
			IsoLevel:   pgx.RepeatableRead,
			AccessMode: pgx.ReadOnly,
		})
		if err != nil {
			return fmt.Errorf("begin read transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		if err := fn(newPgRepository(tx, log)); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit read transaction: %w", err)
		}
		return nil
	}
	return repo
}

func newPgRepository(db database.PgxQuerier, log *zap.Logger) *Repository {
	return &Repository{
		Customer: NewCustomerRepository(db, log),
		Item:     NewItemRepository(db, log),
		Review:   NewReviewRepository(db, log),
	}
}

// NewSQLiteRepository builds the same repositories over an embedded SQLite database.
func NewSQLiteRepository(db *sqlx.DB, log *zap.Logger) *Repository {
	repo := newSQLiteRepository(db, log)
	repo.ping = db.PingContext
	repo.readOnly = func(ctx context.Context, fn func(repo *Repository) error) error {
		return withSQLiteTx(ctx, db, func(tx database.SqlxQuerier) error {
			return fn(newSQLiteRepository(tx, log))
		})
	}
	return repo
}

func newSQLiteRepository(db database.SqlxQuerier, log *zap.Logger) *Repository {
	return &Repository{
		Customer: NewSQLiteCustomerRepository(db, log),
		Item:     NewSQLiteItemRepository(db, log),
		Review:   NewSQLiteReviewRepository(db, log),
	}
}

// Ping checks the underlying store.
func (r *Repository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// ReadOnly runs fn against repositories bound to a single read transaction,
// so a read spanning several statements sees one snapshot. Called on
// repositories already inside a transaction, it runs fn on them directly.
func (r *Repository) ReadOnly(ctx context.Context, fn func(repo *Repository) error) error {
	if r.readOnly == nil {
		return fn(r)
	}
	return r.readOnly(ctx, fn)
}
