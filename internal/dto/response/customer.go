package response

import (
	"fmt"

	"customer-reviews/internal/data/entity"
)

// CustomerResponse is a customer serialized as the root. Nested reviews drop
// their customer back-reference, and the derived items view is only present
// when explicitly requested.
type CustomerResponse struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Reviews []CustomerReview `json:"reviews"`
	Items   *[]ItemSummary   `json:"items,omitempty"`
}

// CustomerReview is a review nested under its customer.
type CustomerReview struct {
	ID      int64       `json:"id"`
	Comment *string     `json:"comment"`
	Item    ItemSummary `json:"item"`
}

// CustomerToResponse serializes customer with its reviews, in the given
// order. items must hold every item the reviews point at.
func CustomerToResponse(customer *entity.Customer, reviews []*entity.Review, items map[int64]*entity.Item) (CustomerResponse, error) {
	nested := make([]CustomerReview, len(reviews))
	for i, review := range reviews {
		item, ok := items[review.ItemID]
		if !ok {
			return CustomerResponse{}, fmt.Errorf("customer %d review %d item %d: %w",
				customer.ID, review.ID, review.ItemID, ErrRelationNotLoaded)
		}
		nested[i] = CustomerReview{
			ID:      review.ID,
			Comment: review.Comment,
			Item:    ItemToSummary(item),
		}
	}

	return CustomerResponse{
		ID:      customer.ID,
		Name:    customer.Name,
		Reviews: nested,
	}, nil
}

// WithItems adds the derived items view.
func (c CustomerResponse) WithItems(items []*entity.Item) CustomerResponse {
	summaries := ItemsToSummaries(items)
	c.Items = &summaries
	return c
}
