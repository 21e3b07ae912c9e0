package wire

import (
	"customer-reviews/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	// GET /api/reviews - List reviews with customer and item
	r.Get("/api/reviews", reviewHandler.GetReviews)

	// POST /api/reviews - Create review; customer and item must exist
	r.Post("/api/reviews", reviewHandler.CreateReview)

	// GET /api/reviews/{id}
	r.Get("/api/reviews/{id}", reviewHandler.GetReview)

	// PUT /api/reviews/{id} - Update comment
	r.Put("/api/reviews/{id}", reviewHandler.UpdateReview)

	// DELETE /api/reviews/{id}
	r.Delete("/api/reviews/{id}", reviewHandler.DeleteReview)
}
