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

type ReviewRepository interface {
	// Create fails with ErrConstraintViolation when the customer or item
	// does not exist.
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id int64) (*entity.Review, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error)
	CountAll(ctx context.Context) (int64, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]*entity.Review, error)
	FindByItemID(ctx context.Context, itemID int64) ([]*entity.Review, error)
	// FindByCustomerIDs and FindByItemIDs load the reviews of many parents
	// in one statement, ordered by review id.
	FindByCustomerIDs(ctx context.Context, customerIDs []int64) ([]*entity.Review, error)
	FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id int64) error
}

type reviewRepository struct {
	db  database.PgxQuerier
	log *zap.Logger
}

func NewReviewRepository(db database.PgxQuerier, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (comment, customer_id, item_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		review.Comment,
		review.CustomerID,
		review.ItemID,
	).Scan(&review.ID)

	if err != nil {
		err = classifyPg(err)
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("customer_id", review.CustomerID),
			zap.Int64("item_id", review.ItemID),
		)
		return fmt.Errorf("create review for item %d by customer %d: %w",
			review.ItemID, review.CustomerID, err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id int64) (*entity.Review, error) {
	query := `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.Comment,
		&review.CustomerID,
		&review.ItemID,
	)

	if errors.Is(err, pgx.ErrNoRows) {
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

func (r *reviewRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reviews",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reviews: %w", err)
	}

	return r.scanReviews(rows)
}

func (r *reviewRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM reviews`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count reviews", zap.Error(err))
		return 0, fmt.Errorf("count reviews: %w", err)
	}

	return count, nil
}

func (r *reviewRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*entity.Review, error) {
	query := `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE customer_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("Failed to find reviews by customer ID",
			zap.Error(err),
			zap.Int64("customer_id", customerID),
		)
		return nil, fmt.Errorf("find reviews by customer ID %d: %w", customerID, err)
	}

	return r.scanReviews(rows)
}

func (r *reviewRepository) FindByItemID(ctx context.Context, itemID int64) ([]*entity.Review, error) {
	query := `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE item_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		r.log.Error("Failed to find reviews by item ID",
			zap.Error(err),
			zap.Int64("item_id", itemID),
		)
		return nil, fmt.Errorf("find reviews by item ID %d: %w", itemID, err)
	}

	return r.scanReviews(rows)
}

func (r *reviewRepository) FindByCustomerIDs(ctx context.Context, customerIDs []int64) ([]*entity.Review, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE customer_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, customerIDs)
	if err != nil {
		r.log.Error("Failed to find reviews by customer IDs",
			zap.Error(err),
			zap.Int64s("customer_ids", customerIDs),
		)
		return nil, fmt.Errorf("find reviews by customer IDs: %w", err)
	}

	return r.scanReviews(rows)
}

func (r *reviewRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*entity.Review, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, comment, customer_id, item_id
		FROM reviews
		WHERE item_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, itemIDs)
	if err != nil {
		r.log.Error("Failed to find reviews by item IDs",
			zap.Error(err),
			zap.Int64s("item_ids", itemIDs),
		)
		return nil, fmt.Errorf("find reviews by item IDs: %w", err)
	}

	return r.scanReviews(rows)
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `UPDATE reviews SET comment = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, review.ID, review.Comment)
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.Int64("review_id", review.ID),
		)
		return fmt.Errorf("update review %d: %w", review.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %d: %w", review.ID, ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.Int64("review_id", id),
		)
		return fmt.Errorf("delete review %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}

	return nil
}

func (r *reviewRepository) scanReviews(rows pgx.Rows) ([]*entity.Review, error) {
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.Comment,
			&review.CustomerID,
			&review.ItemID,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
