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

type ItemService interface {
	CreateItem(ctx context.Context, req *request.CreateItemRequest) (*response.ItemResponse, error)
	GetItem(ctx context.Context, itemID string, include request.Include) (*response.ItemResponse, error)
	GetItems(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ItemResponse], error)
	UpdateItem(ctx context.Context, itemID string, req *request.UpdateItemRequest) (*response.ItemResponse, error)
	DeleteItem(ctx context.Context, itemID string) error

	// Relationship views
	GetItemReviews(ctx context.Context, itemID string) ([]response.ItemReview, error)
	GetItemCustomers(ctx context.Context, itemID string) ([]response.CustomerSummary, error)
}

type itemService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewItemService(repo *repository.Repository, log *zap.Logger) ItemService {
	return &itemService{
		repo: repo,
		log:  log.With(zap.String("service", "item")),
	}
}

func (s *itemService) CreateItem(ctx context.Context, req *request.CreateItemRequest) (*response.ItemResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create item validation failed", zap.Error(err))
		return nil, err
	}

	item := &entity.Item{
		Name:  req.Name,
		Price: req.Price,
	}
	if err := s.repo.Item.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.log.Info("Item created",
		zap.Int64("item_id", item.ID),
		zap.String("name", item.Name),
		zap.Float64("price", item.Price),
	)

	resp, err := response.ItemToResponse(item, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *itemService) GetItem(ctx context.Context, itemID string, include request.Include) (*response.ItemResponse, error) {
	for _, view := range include {
		if view != "customers" {
			return nil, fmt.Errorf("%w: unknown item view %q", ErrValidation, view)
		}
	}

	id, err := parseID("item", itemID)
	if err != nil {
		return nil, err
	}

	return s.readItem(ctx, id, include.Has("customers"))
}

func (s *itemService) GetItems(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ItemResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		itemResponses []response.ItemResponse
		total         int64
	)
	err := s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		items, err := repo.Item.FindAll(ctx, req.Limit(), req.Offset())
		if err != nil {
			return fmt.Errorf("get items: %w", err)
		}

		total, err = repo.Item.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("count items: %w", err)
		}

		itemResponses, err = s.buildItemResponses(ctx, repo, items, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Items retrieved",
		zap.Int("count", len(itemResponses)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(itemResponses, req.Page, req.Limit(), total), nil
}

func (s *itemService) UpdateItem(ctx context.Context, itemID string, req *request.UpdateItemRequest) (*response.ItemResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update item validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID("item", itemID)
	if err != nil {
		return nil, err
	}

	item, err := findItem(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.Name != nil && *req.Name != item.Name {
		item.Name = *req.Name
		updated = true
	}

	if req.Price != nil && *req.Price != item.Price {
		item.Price = *req.Price
		updated = true
	}

	if updated {
		if err := s.repo.Item.Update(ctx, item); err != nil {
			return nil, fmt.Errorf("update item: %w", err)
		}

		s.log.Info("Item updated",
			zap.Int64("item_id", item.ID),
			zap.Float64("price", item.Price),
		)
	}

	return s.readItem(ctx, id, false)
}

func (s *itemService) DeleteItem(ctx context.Context, itemID string) error {
	id, err := parseID("item", itemID)
	if err != nil {
		return err
	}

	removed, err := s.repo.Item.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.log.Info("Item deleted with reviews",
		zap.Int64("item_id", id),
		zap.Int64("reviews_removed", removed),
	)
	return nil
}

func (s *itemService) GetItemReviews(ctx context.Context, itemID string) ([]response.ItemReview, error) {
	id, err := parseID("item", itemID)
	if err != nil {
		return nil, err
	}

	resp, err := s.readItem(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

func (s *itemService) GetItemCustomers(ctx context.Context, itemID string) ([]response.CustomerSummary, error) {
	id, err := parseID("item", itemID)
	if err != nil {
		return nil, err
	}

	var customers []*entity.Customer
	err = s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		if _, err := findItem(ctx, repo, id); err != nil {
			return err
		}

		found, err := repo.Customer.FindByItemID(ctx, id)
		if err != nil {
			return fmt.Errorf("get item customers: %w", err)
		}
		customers = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response.CustomersToSummaries(customers), nil
}

// ==================== HELPER METHODS ====================

func findItem(ctx context.Context, repo *repository.Repository, id int64) (*entity.Item, error) {
	item, err := repo.Item.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	return item, nil
}

func (s *itemService) readItem(ctx context.Context, id int64, withCustomers bool) (*response.ItemResponse, error) {
	var resp response.ItemResponse
	err := s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		item, err := findItem(ctx, repo, id)
		if err != nil {
			return err
		}

		built, err := s.buildItemResponses(ctx, repo, []*entity.Item{item}, withCustomers)
		if err != nil {
			return err
		}
		resp = built[0]
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *itemService) buildItemResponses(ctx context.Context, repo *repository.Repository, items []*entity.Item, withCustomers bool) ([]response.ItemResponse, error) {
	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	reviews, err := repo.Review.FindByItemIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load reviews of items: %w", err)
	}

	customers, err := repo.Customer.FindByIDs(ctx, entity.CustomerIDs(reviews))
	if err != nil {
		return nil, fmt.Errorf("load customers of items: %w", err)
	}
	index := entity.IndexCustomers(customers)
	byItem := entity.GroupByItem(reviews)

	out := make([]response.ItemResponse, len(items))
	for i, item := range items {
		own := byItem[item.ID]

		resp, err := response.ItemToResponse(item, own, index)
		if err != nil {
			s.log.Error("Failed to serialize item",
				zap.Error(err),
				zap.Int64("item_id", item.ID),
			)
			return nil, err
		}

		if withCustomers {
			resp = resp.WithCustomers(entity.CustomersOf(own, index))
		}
		out[i] = resp
	}

	return out, nil
}
