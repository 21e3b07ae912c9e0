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

type sqliteItemRepository struct {
	db  database.SqlxQuerier
	log *zap.Logger
}

func NewSQLiteItemRepository(db database.SqlxQuerier, log *zap.Logger) ItemRepository {
	return &sqliteItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "item"), zap.String("driver", "sqlite")),
	}
}

func (r *sqliteItemRepository) Create(ctx context.Context, item *entity.Item) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO items (name, price) VALUES (?, ?)`, item.Name, item.Price)
	if err != nil {
		r.log.Error("Failed to create item",
			zap.Error(err),
			zap.String("name", item.Name),
			zap.Float64("price", item.Price),
		)
		return fmt.Errorf("create item %q: %w", item.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create item %q: last insert id: %w", item.Name, err)
	}
	item.ID = id

	return nil
}

func (r *sqliteItemRepository) FindByID(ctx context.Context, id int64) (*entity.Item, error) {
	var item entity.Item
	err := r.db.GetContext(ctx, &item, `SELECT id, name, price FROM items WHERE id = ?`, id)

	if errors.Is(err, sql.ErrNoRows) {
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

func (r *sqliteItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id, name, price FROM items WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("build items by IDs query: %w", err)
	}

	var items []*entity.Item
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		r.log.Error("Failed to find items by IDs",
			zap.Error(err),
			zap.Int64s("item_ids", ids),
		)
		return nil, fmt.Errorf("find items by IDs: %w", err)
	}

	return items, nil
}

func (r *sqliteItemRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	var items []*entity.Item
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, name, price FROM items ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		r.log.Error("Failed to find items",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find items: %w", err)
	}

	return items, nil
}

func (r *sqliteItemRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM items`); err != nil {
		r.log.Error("Failed to count items", zap.Error(err))
		return 0, fmt.Errorf("count items: %w", err)
	}

	return count, nil
}

func (r *sqliteItemRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*entity.Item, error) {
	query := `
		SELECT i.id, i.name, i.price
		FROM reviews rv
		JOIN items i ON i.id = rv.item_id
		WHERE rv.customer_id = ?
		ORDER BY rv.id
	`

	var items []*entity.Item
	if err := r.db.SelectContext(ctx, &items, query, customerID); err != nil {
		r.log.Error("Failed to find items by customer ID",
			zap.Error(err),
			zap.Int64("customer_id", customerID),
		)
		return nil, fmt.Errorf("find items by customer ID %d: %w", customerID, err)
	}

	return items, nil
}

func (r *sqliteItemRepository) Update(ctx context.Context, item *entity.Item) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = ?, price = ? WHERE id = ?`, item.Name, item.Price, item.ID)
	if err != nil {
		r.log.Error("Failed to update item",
			zap.Error(err),
			zap.Int64("item_id", item.ID),
		)
		return fmt.Errorf("update item %d: %w", item.ID, err)
	}

	return requireAffected(result, fmt.Sprintf("item %d", item.ID))
}

func (r *sqliteItemRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var removed int64
	err := withSQLiteTx(ctx, r.db, func(tx database.SqlxQuerier) error {
		reviews, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE item_id = ?`, id)
		if err != nil {
			r.log.Error("Failed to delete item reviews",
				zap.Error(err),
				zap.Int64("item_id", id),
			)
			return fmt.Errorf("delete reviews of item %d: %w", id, err)
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
		if err != nil {
			r.log.Error("Failed to delete item",
				zap.Error(err),
				zap.Int64("item_id", id),
			)
			return fmt.Errorf("delete item %d: %w", id, err)
		}

		if err := requireAffected(result, fmt.Sprintf("item %d", id)); err != nil {
			return err
		}

		removed, err = reviews.RowsAffected()
		if err != nil {
			return fmt.Errorf("count removed reviews of item %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}
