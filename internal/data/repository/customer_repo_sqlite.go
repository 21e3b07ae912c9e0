package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"customer-reviews/internal/data/entity"
	"customer-reviews/pkg/database"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type sqliteCustomerRepository struct {
	db  database.SqlxQuerier
	log *zap.Logger
}

func NewSQLiteCustomerRepository(db database.SqlxQuerier, log *zap.Logger) CustomerRepository {
	return &sqliteCustomerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer"), zap.String("driver", "sqlite")),
	}
}

func (r *sqliteCustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	result, err := r.db.ExecContext(ctx, `INSERT INTO customers (name) VALUES (?)`, customer.Name)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("name", customer.Name),
		)
		return fmt.Errorf("create customer %q: %w", customer.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create customer %q: last insert id: %w", customer.Name, err)
	}
	customer.ID = id

	return nil
}

func (r *sqliteCustomerRepository) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.GetContext(ctx, &customer, `SELECT id, name FROM customers WHERE id = ?`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.Int64("customer_id", id),
		)
		return nil, fmt.Errorf("find customer by ID %d: %w", id, err)
	}

	return &customer, nil
}

func (r *sqliteCustomerRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id, name FROM customers WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("build customers by IDs query: %w", err)
	}

	var customers []*entity.Customer
	if err := r.db.SelectContext(ctx, &customers, r.db.Rebind(query), args...); err != nil {
		r.log.Error("Failed to find customers by IDs",
			zap.Error(err),
			zap.Int64s("customer_ids", ids),
		)
		return nil, fmt.Errorf("find customers by IDs: %w", err)
	}

	return customers, nil
}

func (r *sqliteCustomerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	var customers []*entity.Customer
	err := r.db.SelectContext(ctx, &customers,
		`SELECT id, name FROM customers ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		r.log.Error("Failed to find customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find customers: %w", err)
	}

	return customers, nil
}

func (r *sqliteCustomerRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func (r *sqliteCustomerRepository) FindByItemID(ctx context.Context, itemID int64) ([]*entity.Customer, error) {
	query := `
		SELECT c.id, c.name
		FROM reviews rv
		JOIN customers c ON c.id = rv.customer_id
		WHERE rv.item_id = ?
		ORDER BY rv.id
	`

	var customers []*entity.Customer
	if err := r.db.SelectContext(ctx, &customers, query, itemID); err != nil {
		r.log.Error("Failed to find customers by item ID",
			zap.Error(err),
			zap.Int64("item_id", itemID),
		)
		return nil, fmt.Errorf("find customers by item ID %d: %w", itemID, err)
	}

	return customers, nil
}

func (r *sqliteCustomerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE customers SET name = ? WHERE id = ?`, customer.Name, customer.ID)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.Int64("customer_id", customer.ID),
		)
		return fmt.Errorf("update customer %d: %w", customer.ID, err)
	}

	return requireAffected(result, fmt.Sprintf("customer %d", customer.ID))
}

func (r *sqliteCustomerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var removed int64
	err := withSQLiteTx(ctx, r.db, func(tx database.SqlxQuerier) error {
		reviews, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE customer_id = ?`, id)
		if err != nil {
			r.log.Error("Failed to delete customer reviews",
				zap.Error(err),
				zap.Int64("customer_id", id),
			)
			return fmt.Errorf("delete reviews of customer %d: %w", id, err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
		if err != nil {
			r.log.Error("Failed to delete customer",
				zap.Error(err),
				zap.Int64("customer_id", id),
			)
			return fmt.Errorf("delete customer %d: %w", id, err)
		}

		if err := requireAffected(result, fmt.Sprintf("customer %d", id)); err != nil {
			return err
		}

		removed, err = reviews.RowsAffected()
		if err != nil {
			return fmt.Errorf("count removed reviews of customer %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// withSQLiteTx runs fn in a new transaction, or directly on db when db is
// already one.
func withSQLiteTx(ctx context.Context, db database.SqlxQuerier, fn func(tx database.SqlxQuerier) error) error {
	beginner, ok := db.(interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
	})
	if !ok {
		return fn(db)
	}

	tx, err := beginner.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(result sql.Result, what string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
