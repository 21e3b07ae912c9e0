package response

import (
	"fmt"

	"customer-reviews/internal/data/entity"
)

// ReviewResponse is a review serialized as the root: every column plus its
// customer and item as summaries, so neither re-enters the review through
// its own reviews.
type ReviewResponse struct {
	ID         int64           `json:"id"`
	Comment    *string         `json:"comment"`
	CustomerID int64           `json:"customer_id"`
	ItemID     int64           `json:"item_id"`
	Customer   CustomerSummary `json:"customer"`
	Item       ItemSummary     `json:"item"`
}

// ReviewToResponse requires the review's customer and item.
func ReviewToResponse(review *entity.Review, customer *entity.Customer, item *entity.Item) (ReviewResponse, error) {
	if customer == nil || customer.ID != review.CustomerID {
		return ReviewResponse{}, fmt.Errorf("review %d customer %d: %w",
			review.ID, review.CustomerID, ErrRelationNotLoaded)
	}
	if item == nil || item.ID != review.ItemID {
		return ReviewResponse{}, fmt.Errorf("review %d item %d: %w",
			review.ID, review.ItemID, ErrRelationNotLoaded)
	}

	return ReviewResponse{
		ID:         review.ID,
		Comment:    review.Comment,
		CustomerID: review.CustomerID,
		ItemID:     review.ItemID,
		Customer:   CustomerToSummary(customer),
		Item:       ItemToSummary(item),
	}, nil
}

// ReviewsToResponse resolves each review's customer and item from the maps.
func ReviewsToResponse(reviews []*entity.Review, customers map[int64]*entity.Customer, items map[int64]*entity.Item) ([]ReviewResponse, error) {
	out := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp, err := ReviewToResponse(review, customers[review.CustomerID], items[review.ItemID])
		if err != nil {
			return nil, err
		}
		out[i] = resp
	}
	return out, nil
}
