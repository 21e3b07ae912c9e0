package repository

import (
	"context"
	"errors"
	"fmt"

	"customer-reviews/internal/data/entity"
	"customer-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id int64) (*entity.Customer, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Customer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete removes the customer and all of its reviews in one transaction
	// and reports how many reviews went with it.
	Delete(ctx context.Context, id int64) (int64, error)

	// FindByItemID lists the customer of every review of the item, in
	// review order. A customer who reviewed the item twice appears twice.
	FindByItemID(ctx context.Context, itemID int64) ([]*entity.Customer, error)
}

type customerRepository struct {
	db  database.PgxQuerier
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxQuerier, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `INSERT INTO customers (name) VALUES ($1) RETURNING id`

	err := r.db.QueryRow(ctx, query, customer.Name).Scan(&customer.ID)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("name", customer.Name),
		)
		return fmt.Errorf("create customer %q: %w", customer.Name, err)
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT id, name FROM customers WHERE id = $1`

	var customer entity.Customer
	err := r.db.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name)

	if errors.Is(err, pgx.ErrNoRows) {
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

func (r *customerRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name FROM customers WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find customers by IDs",
			zap.Error(err),
			zap.Int64s("customer_ids", ids),
		)
		return nil, fmt.Errorf("find customers by IDs: %w", err)
	}

	return r.scanCustomers(rows)
}

func (r *customerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT id, name FROM customers ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find customers: %w", err)
	}

	return r.scanCustomers(rows)
}

func (r *customerRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

func (r *customerRepository) FindByItemID(ctx context.Context, itemID int64) ([]*entity.Customer, error) {
	query := `
		SELECT c.id, c.name
		FROM reviews rv
		JOIN customers c ON c.id = rv.customer_id
		WHERE rv.item_id = $1
		ORDER BY rv.id
	`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		r.log.Error("Failed to find customers by item ID",
			zap.Error(err),
			zap.Int64("item_id", itemID),
		)
		return nil, fmt.Errorf("find customers by item ID %d: %w", itemID, err)
	}

	return r.scanCustomers(rows)
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `UPDATE customers SET name = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, customer.ID, customer.Name)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.Int64("customer_id", customer.ID),
		)
		return fmt.Errorf("update customer %d: %w", customer.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %d: %w", customer.ID, ErrNotFound)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin delete customer %d: %w", id, err)
	}
	defer tx.Rollback(ctx)

	reviews, err := tx.Exec(ctx, `DELETE FROM reviews WHERE customer_id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete customer reviews",
			zap.Error(err),
			zap.Int64("customer_id", id),
		)
		return 0, fmt.Errorf("delete reviews of customer %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.Int64("customer_id", id),
		)
		return 0, fmt.Errorf("delete customer %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit delete customer %d: %w", id, err)
	}

	return reviews.RowsAffected(), nil
}

func (r *customerRepository) scanCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var customer entity.Customer
		if err := rows.Scan(&customer.ID, &customer.Name); err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, &customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}
