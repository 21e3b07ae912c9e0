package adaptor

import (
	"errors"
	"net/http"

	"customer-reviews/internal/dto/request"
	"customer-reviews/internal/dto/response"
	"customer-reviews/internal/usecase"
	"customer-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Customer *CustomerHandler
	Item     *ItemHandler
	Review   *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Customer: NewCustomerHandler(service.Customer, log),
		Item:     NewItemHandler(service.Item, log),
		Review:   NewReviewHandler(service.Review, log),
	}
}

// handleServiceError maps usecase errors onto HTTP responses
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrConstraintViolation):
		log.Warn(operation+" failed - constraint violation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, "Referenced customer or item does not exist")

	case errors.Is(err, response.ErrRelationNotLoaded):
		log.Error(operation+" failed - relation not loaded",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
