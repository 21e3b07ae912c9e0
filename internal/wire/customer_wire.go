package wire

import (
	"customer-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler) {
	r.Route("/api/customers", func(r chi.Router) {
		// GET /api/customers - List customers with their reviews
		r.Get("/", customerHandler.GetCustomers)

		// POST /api/customers - Create customer
		r.Post("/", customerHandler.CreateCustomer)

		r.Route("/{id}", func(r chi.Router) {
			// GET /api/customers/{id}?include=items
			r.Get("/", customerHandler.GetCustomer)

			// PUT /api/customers/{id} - Rename customer
			r.Put("/", customerHandler.UpdateCustomer)

			// DELETE /api/customers/{id} - Delete customer and its reviews
			r.Delete("/", customerHandler.DeleteCustomer)

			// GET /api/customers/{id}/reviews
			r.Get("/reviews", customerHandler.GetCustomerReviews)

			// GET /api/customers/{id}/items - Items reached through reviews
			r.Get("/items", customerHandler.GetCustomerItems)
		})
	})
}
