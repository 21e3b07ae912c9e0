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

const sqliteReviewColumns = `SELECT id, comment, customer_id, item_id FROM reviews`

type sqliteReviewRepository struct {
	db  database.SqlxQuerier
	log *zap.Logger
}

func NewSQLiteReviewRepository(db database.SqlxQuerier, log *zap.Logger) ReviewRepository {
	return &sqliteReviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review"), zap.String("driver", "sqlite")),
	}
}

func (r *sqliteReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (comment, customer_id, item_id) VALUES (?, ?, ?)`,
		review.Comment,
		review.CustomerID,
		review.ItemID,
	)
	if err != nil {
		err = classifySQLite(err)
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("customer_id", review.CustomerID),
			zap.Int64("item_id", review.ItemID),
		)
		return fmt.Errorf("create review for item %d by customer %d: %w",
			review.ItemID, review.CustomerID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("create review: last insert id: %w", err)
	}
	review.ID = id

	return nil
}

func (r *sqliteReviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	var review entity.Review
	err := r.db.GetContext(ctx, &review, sqliteReviewColumns+` WHERE id = ?`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return nil, fmt.Errorf("find review by ID %d: %w", id, err)
	}

	return &review, nil
}

func (r *sqliteReviewRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := r.db.SelectContext(ctx, &reviews,
		sqliteReviewColumns+` ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	return reviews, nil
}

func (r *sqliteReviewRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reviews`); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}

func (r *sqliteReviewRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := r.db.SelectContext(ctx, &reviews,
		sqliteReviewColumns+` WHERE customer_id = ? ORDER BY id`, customerID)
	if err != nil {
		r.log.Error("Failed to find reviews by customer ID",
			zap.Error(err),
			zap.Int64("customer_id", customerID),
		)
		return nil, fmt.Errorf("find reviews by customer ID %d: %w", customerID, err)
	}

	return reviews, nil
}

func (r *sqliteReviewRepository) FindByItemID(ctx context.Context, itemID int64) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := r.db.SelectContext(ctx, &reviews,
		sqliteReviewColumns+` WHERE item_id = ? ORDER BY id`, itemID)
	if err != nil {
		r.log.Error("Failed to find reviews by item ID",
			zap.Error(err),
			zap.Int64("item_id", itemID),
		)
		return nil, fmt.Errorf("find reviews by item ID %d: %w", itemID, err)
	}

	return reviews, nil
}

func (r *sqliteReviewRepository) FindByCustomerIDs(ctx context.Context, customerIDs []int64) ([]*entity.Review, error) {
	return r.findByParents(ctx, "customer_id", customerIDs)
}

func (r *sqliteReviewRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*entity.Review, error) {
	return r.findByParents(ctx, "item_id", itemIDs)
}

// findByParents loads reviews whose column is one of ids. column is one of
// the two fixed foreign key names, never caller input.
func (r *sqliteReviewRepository) findByParents(ctx context.Context, column string, ids []int64) ([]*entity.Review, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(sqliteReviewColumns+` WHERE `+column+` IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("build reviews by %s query: %w", column, err)
	}

	var reviews []*entity.Review
	if err := r.db.SelectContext(ctx, &reviews, r.db.Rebind(query), args...); err != nil {
		r.log.Error("Failed to find reviews by parent IDs",
			zap.Error(err),
			zap.String("column", column),
			zap.Int64s("ids", ids),
		)
		return nil, fmt.Errorf("find reviews by %s: %w", column, err)
	}

	return reviews, nil
}

func (r *sqliteReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET comment = ? WHERE id = ?`, review.Comment, review.ID)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}

	return requireAffected(result, fmt.Sprintf("review %d", review.ID))
}

func (r *sqliteReviewRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if err := requireAffected(result, fmt.Sprintf("review %d", id)); err != nil {
		return err
	}

	return nil
}
