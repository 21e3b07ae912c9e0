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

type CustomerHandler struct {
	service usecase.CustomerService
	log     *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		log:     log.With(zap.String("handler", "customer")),
	}
}

// GetCustomers handles GET /api/customers
func (h *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.GetCustomers(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(h.log, w, err, "get customers")
		return
	}

	utils.ResponseSuccess(w, "success", customers)
}

// CreateCustomer handles POST /api/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	customer, err := h.service.CreateCustomer(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create customer")
		return
	}

	utils.ResponseCreated(w, "success", customer)
}

// GetCustomer handles GET /api/customers/{id}?include=items
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	include := request.ParseInclude(r.URL.Query().Get("include"))

	customer, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "id"), include)
	if err != nil {
		handleServiceError(h.log, w, err, "get customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	customer, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "success", customer)
}

// DeleteCustomer handles DELETE /api/customers/{id}; the customer's reviews go with it.
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete customer")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetCustomerReviews handles GET /api/customers/{id}/reviews
func (h *CustomerHandler) GetCustomerReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetCustomerReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get customer reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetCustomerItems handles GET /api/customers/{id}/items
func (h *CustomerHandler) GetCustomerItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetCustomerItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get customer items")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}
