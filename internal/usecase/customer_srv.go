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

type CustomerService interface {
	CreateCustomer(ctx context.Context, req *request.CreateCustomerRequest) (*response.CustomerResponse, error)
	GetCustomer(ctx context.Context, customerID string, include request.Include) (*response.CustomerResponse, error)
	GetCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, customerID string) error

	// Relationship views
	GetCustomerReviews(ctx context.Context, customerID string) ([]response.CustomerReview, error)
	GetCustomerItems(ctx context.Context, customerID string) ([]response.ItemSummary, error)
}

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CreateCustomerRequest) (*response.CustomerResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Create customer validation failed", zap.Error(err))
		return nil, err
	}

	customer := &entity.Customer{Name: req.Name}
	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created",
		zap.Int64("customer_id", customer.ID),
		zap.String("name", customer.Name),
	)

	resp, err := response.CustomerToResponse(customer, nil, nil)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID string, include request.Include) (*response.CustomerResponse, error) {
	for _, view := range include {
		if view != "items" {
			return nil, fmt.Errorf("%w: unknown customer view %q", ErrValidation, view)
		}
	}

	id, err := parseID("customer", customerID)
	if err != nil {
		return nil, err
	}

	return s.readCustomer(ctx, id, include.Has("items"))
}

func (s *customerService) GetCustomers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		customerResponses []response.CustomerResponse
		total             int64
	)
	err := s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		customers, err := repo.Customer.FindAll(ctx, req.Limit(), req.Offset())
		if err != nil {
			return fmt.Errorf("get customers: %w", err)
		}

		total, err = repo.Customer.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("count customers: %w", err)
		}

		customerResponses, err = s.buildCustomerResponses(ctx, repo, customers, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Customers retrieved",
		zap.Int("count", len(customerResponses)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(customerResponses, req.Page, req.Limit(), total), nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error) {
	if err := validate(req); err != nil {
		s.log.Warn("Update customer validation failed", zap.Error(err))
		return nil, err
	}

	id, err := parseID("customer", customerID)
	if err != nil {
		return nil, err
	}

	customer, err := findCustomer(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != customer.Name {
		customer.Name = *req.Name

		if err := s.repo.Customer.Update(ctx, customer); err != nil {
			return nil, fmt.Errorf("update customer: %w", err)
		}

		s.log.Info("Customer updated", zap.Int64("customer_id", customer.ID))
	}

	return s.readCustomer(ctx, id, false)
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	id, err := parseID("customer", customerID)
	if err != nil {
		return err
	}

	removed, err := s.repo.Customer.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	s.log.Info("Customer deleted with reviews",
		zap.Int64("customer_id", id),
		zap.Int64("reviews_removed", removed),
	)
	return nil
}

func (s *customerService) GetCustomerReviews(ctx context.Context, customerID string) ([]response.CustomerReview, error) {
	id, err := parseID("customer", customerID)
	if err != nil {
		return nil, err
	}

	resp, err := s.readCustomer(ctx, id, false)
	if err != nil {
		return nil, err
	}
	return resp.Reviews, nil
}

func (s *customerService) GetCustomerItems(ctx context.Context, customerID string) ([]response.ItemSummary, error) {
	id, err := parseID("customer", customerID)
	if err != nil {
		return nil, err
	}

	var items []*entity.Item
	err = s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		if _, err := findCustomer(ctx, repo, id); err != nil {
			return err
		}

		found, err := repo.Item.FindByCustomerID(ctx, id)
		if err != nil {
			return fmt.Errorf("get customer items: %w", err)
		}
		items = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response.ItemsToSummaries(items), nil
}

// ==================== HELPER METHODS ====================

func findCustomer(ctx context.Context, repo *repository.Repository, id int64) (*entity.Customer, error) {
	customer, err := repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}

	return customer, nil
}

// readCustomer loads and serializes one customer inside a single read
// transaction.
func (s *customerService) readCustomer(ctx context.Context, id int64, withItems bool) (*response.CustomerResponse, error) {
	var resp response.CustomerResponse
	err := s.repo.ReadOnly(ctx, func(repo *repository.Repository) error {
		customer, err := findCustomer(ctx, repo, id)
		if err != nil {
			return err
		}

		built, err := s.buildCustomerResponses(ctx, repo, []*entity.Customer{customer}, withItems)
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

// buildCustomerResponses serializes customers one hop deep with two
// statements however many customers there are.
func (s *customerService) buildCustomerResponses(ctx context.Context, repo *repository.Repository, customers []*entity.Customer, withItems bool) ([]response.CustomerResponse, error) {
	ids := make([]int64, len(customers))
	for i, customer := range customers {
		ids[i] = customer.ID
	}

	reviews, err := repo.Review.FindByCustomerIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load reviews of customers: %w", err)
	}

	items, err := repo.Item.FindByIDs(ctx, entity.ItemIDs(reviews))
	if err != nil {
		return nil, fmt.Errorf("load items of customers: %w", err)
	}
	index := entity.IndexItems(items)
	byCustomer := entity.GroupByCustomer(reviews)

	out := make([]response.CustomerResponse, len(customers))
	for i, customer := range customers {
		own := byCustomer[customer.ID]

		resp, err := response.CustomerToResponse(customer, own, index)
		if err != nil {
			s.log.Error("Failed to serialize customer",
				zap.Error(err),
				zap.Int64("customer_id", customer.ID),
			)
			return nil, err
		}

		if withItems {
			resp = resp.WithItems(entity.ItemsOf(own, index))
		}
		out[i] = resp
	}

	return out, nil
}
