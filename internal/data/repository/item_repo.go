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

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	FindByID(ctx context.Context, id int64) (*entity.Item, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Item, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Item, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id int64) (int64, error)

	// FindByCustomerID lists the item of every review the customer wrote,
	// in review order.
	FindByCustomerID(ctx context.Context, customerID int64) ([]*entity.Item, error)
}

type itemRepository struct {
	db  database.PgxQuerier
	log *zap.Logger
}

func NewItemRepository(db database.PgxQuerier, log *zap.Logger) ItemRepository {
	return &itemRepository{
		db:  db,
		log: log.With(zap.String("repository", "item")),
	}
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	query := `INSERT INTO items (name, price) VALUES ($1, $2) RETURNING id`

	err := r.db.QueryRow(ctx, query, item.Name, item.Price).Scan(&item.ID)
	if err != nil {
		r.log.Error("Failed to create item",
			zap.Error(err),
			zap.String("name", item.Name),
			zap.Float64("price", item.Price),
		)
		return fmt.Errorf("create item %q: %w", item.Name, err)
	}

	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id int64) (*entity.Item, error) {
	query := `SELECT id, name, price FROM items WHERE id = $1`

	var item entity.Item
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Price)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find item by ID",
			zap.Error(err),
			zap.Int64("item_id", id),
		)
		return nil, fmt.Errorf("find item by ID %d: %w", id, err)
	}

	return &item, nil
}

func (r *itemRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, price FROM items WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find items by IDs",
			zap.Error(err),
			zap.Int64s("item_ids", ids),
		)
		return nil, fmt.Errorf("find items by IDs: %w", err)
	}

	return r.scanItems(rows)
}

func (r *itemRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	query := `SELECT id, name, price FROM items ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find items",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find items: %w", err)
	}

	return r.scanItems(rows)
}

func (r *itemRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM items`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count items", zap.Error(err))
		return 0, fmt.Errorf("count items: %w", err)
	}

	return count, nil
}

func (r *itemRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*entity.Item, error) {
	query := `
		SELECT i.id, i.name, i.price
		FROM reviews rv
		JOIN items i ON i.id = rv.item_id
		WHERE rv.customer_id = $1
		ORDER BY rv.id
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to find items by customer ID",
			zap.Error(err),
			zap.Int64("customer_id", customerID),
		)
		return nil, fmt.Errorf("find items by customer ID %d: %w", customerID, err)
	}

	return r.scanItems(rows)
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) error {
	query := `UPDATE items SET name = $2, price = $3 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, item.ID, item.Name, item.Price)
	if err != nil {
		r.log.Error("Failed to update item",
			zap.Error(err),
			zap.Int64("item_id", item.ID),
		)
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", item.ID, ErrNotFound)
	}

	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin delete item %d: %w", id, err)
	}
	defer tx.Rollback(ctx)

	reviews, err := tx.Exec(ctx, `DELETE FROM reviews WHERE item_id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete item reviews",
			zap.Error(err),
			zap.Int64("item_id", id),
		)
		return 0, fmt.Errorf("delete reviews of item %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete item",
			zap.Error(err),
			zap.Int64("item_id", id),
		)
		return 0, fmt.Errorf("delete item %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return 0, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit delete item %d: %w", id, err)
	}

	return reviews.RowsAffected(), nil
}

func (r *itemRepository) scanItems(rows pgx.Rows) ([]*entity.Item, error) {
	defer rows.Close()

	var items []*entity.Item
	for rows.Next() {
		var item entity.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price); err != nil {
			r.log.Error("Failed to scan item row", zap.Error(err))
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}

	return items, nil
}
