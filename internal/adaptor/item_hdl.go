package adaptor

import (
	"encoding/json"
	"net/http"

	"customer-reviews/internal/dto/request"
	"customer-reviews/internal/usecase"
	"customer-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ItemHandler struct {
	service usecase.ItemService
	log     *zap.Logger
}

func NewItemHandler(service usecase.ItemService, log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		log:     log.With(zap.String("handler", "item")),
	}
}

// GetItems handles GET /api/items
func (h *ItemHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetItems(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// CreateItem handles POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req request.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := h.service.CreateItem(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create item")
		return
	}

	utils.ResponseCreated(w, "success", item)
}

// GetItem handles GET /api/items/{id}?include=customers
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	include := request.ParseInclude(r.URL.Query().Get("include"))

	item, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"), include)
	if err != nil {
		handleServiceError(h.log, w, err, "get item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// UpdateItem handles PUT /api/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// DeleteItem handles DELETE /api/items/{id}; the item's reviews go with it.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete item")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetItemReviews handles GET /api/items/{id}/reviews
func (h *ItemHandler) GetItemReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetItemReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get item reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetItemCustomers handles GET /api/items/{id}/customers
func (h *ItemHandler) GetItemCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.GetItemCustomers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get item customers")
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}
