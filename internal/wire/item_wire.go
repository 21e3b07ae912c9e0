package wire

import (
	"customer-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireItem(r chi.Router, itemHandler *adaptor.ItemHandler) {
	r.Route("/api/items", func(r chi.Router) {
		// GET /api/items - List items with their reviews
		r.Get("/", itemHandler.GetItems)

		// POST /api/items - Create item
		r.Post("/", itemHandler.CreateItem)

		r.Route("/{id}", func(r chi.Router) {
			// GET /api/items/{id}?include=customers
			r.Get("/", itemHandler.GetItem)

			// PUT /api/items/{id} - Update name or price
			r.Put("/", itemHandler.UpdateItem)

			// DELETE /api/items/{id} - Delete item and its reviews
			r.Delete("/", itemHandler.DeleteItem)

			// GET /api/items/{id}/reviews
			r.Get("/reviews", itemHandler.GetItemReviews)

			// GET /api/items/{id}/customers - Customers reached through reviews
			r.Get("/customers", itemHandler.GetItemCustomers)
		})
	})
}
