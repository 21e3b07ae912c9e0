package usecase

import (
	"context"
	"fmt"

	"customer-reviews/internal/data/entity"
	"customer-reviews/internal/data/repository"
	"customer-reviews/internal/dto/request"
	"customer-reviews/internal/dto/response"

	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error)
	GetReviews(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	UpdateReview(ctx context.Context, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

// CreateReview leaves the existence check of customer and item to the
// store's foreign keys; a dangling reference comes back as
// ErrConstraintViolation.
func (s *reviewService) CreateReview(ctx context.Context, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create review validation failed", zap.Error(err))
		return nil, err
	}

	review := &entity.Review{
		Comment:    req.Comment,
		CustomerID: req.CustomerID,
		ItemID:     req.ItemID,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("customer_id", review.CustomerID),
		zap.Int64("item_id", review.ItemID),
	)

	return s.readReview(ctx, review.ID)
}

func (s *reviewService) GetReview(ctx context.Context, reviewID string) (*response.ReviewResponse, error) {
	id, err := parseID("review", reviewID)
	if err != nil {
		return nil, err
	}

	return s.readReview(ctx, id)
}

func (s *reviewService) GetReviews(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		reviewResponses []response.ReviewResponse
		total           int64
	)
	err := s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		reviews, err := repo.Review.FindAll(ctx, req.Limit(), req.Offset())
		if err != nil {
			return fmt.Errorf("get reviews: %w", err)
		}

		total, err = repo.Review.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("count reviews: %w", err)
		}

		customers, err := repo.Customer.FindByIDs(ctx, entity.CustomerIDs(reviews))
		if err != nil {
			return fmt.Errorf("load review customers: %w", err)
		}

		items, err := repo.Item.FindByIDs(ctx, entity.ItemIDs(reviews))
		if err != nil {
			return fmt.Errorf("load review items: %w", err)
		}

		reviewResponses, err = response.ReviewsToResponse(reviews,
			entity.IndexCustomers(customers), entity.IndexItems(items))
		if err != nil {
			s.log.Error("Failed to serialize reviews", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reviews retrieved",
		zap.Int("count", len(reviewResponses)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.Limit(), total), nil
}

// UpdateReview changes the comment only when the request carries one; an
// explicit null clears it.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update review validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID("review", reviewID)
	if err != nil {
		return nil, err
	}

	review, err := findReview(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	if req.HasComment() {
		review.Comment = req.Comment

		if err := s.repo.Review.Update(ctx, review); err != nil {
			return nil, fmt.Errorf("update review: %w", err)
		}

		s.log.Info("Review updated", zap.Int64("review_id", review.ID))
	}

	return s.readReview(ctx, id)
}

func (s *reviewService) DeleteReview(ctx context.Context, reviewID string) error {
	id, err := parseID("review", reviewID)
	if err != nil {
		return err
	}

	if err := s.repo.Review.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	s.log.Info("Review deleted", zap.Int64("review_id", id))
	return nil
}

// ==================== HELPER METHODS ====================

func findReview(ctx context.Context, repo *repository.Repository, id int64) (*entity.Review, error) {
	review, err := repo.Review.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review %d: %w", id, err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}

	return review, nil
}

// readReview loads a review with its customer and item from one snapshot.
func (s *reviewService) readReview(ctx context.Context, id int64) (*response.ReviewResponse, error) {
	var resp response.ReviewResponse
	err := s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		review, err := findReview(ctx, repo, id)
		if err != nil {
			return err
		}

		customer, err := repo.Customer.FindByID(ctx, review.CustomerID)
		if err != nil {
			return fmt.Errorf("load customer of review %d: %w", review.ID, err)
		}

		item, err := repo.Item.FindByID(ctx, review.ItemID)
		if err != nil {
			return fmt.Errorf("load item of review %d: %w", review.ID, err)
		}

		resp, err = response.ReviewToResponse(review, customer, item)
		if err != nil {
			s.log.Error("Failed to serialize review",
				zap.Error(err),
				zap.Int64("review_id", review.ID),
			)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}
