package usecase

import (
	"errors"
	"fmt"

	"customer-reviews/internal/data/repository"
	"customer-reviews/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrValidation = errors.New("validation failed")

	// Re-exported so callers above the usecase layer need not import the
	// repository package to classify errors.
	ErrNotFound            = repository.ErrNotFound
	ErrConstraintViolation = repository.ErrConstraintViolation
)

type Service struct {
	Customer CustomerService
	Item     ItemService
	Review   ReviewService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	return &Service{
		Customer: NewCustomerService(repo, log),
		Item:     NewItemService(repo, log),
		Review:   NewReviewService(repo, log),
	}
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}
	return nil
}

func parseID(kind, raw string) (int64, error) {
	id, err := utils.ParseID(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s ID %q", ErrValidation, kind, raw)
	}
	return id, nil
}
