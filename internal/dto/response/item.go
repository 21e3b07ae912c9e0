package response

import (
	"fmt"

	"customer-reviews/internal/data/entity"
)

// ItemResponse mirrors CustomerResponse: nested reviews drop their item
// back-reference and the derived customers view is opt-in.
type ItemResponse struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Reviews   []ItemReview       `json:"reviews"`
	Customers *[]CustomerSummary `json:"customers,omitempty"`
}

// ItemReview is a review nested under its item.
type ItemReview struct {
	ID       int64           `json:"id"`
	Comment  *string         `json:"comment"`
	Customer CustomerSummary `json:"customer"`
}

func ItemToResponse(item *entity.Item, reviews []*entity.Review, customers map[int64]*entity.Customer) (ItemResponse, error) {
	nested := make([]ItemReview, len(reviews))
	for i, review := range reviews {
		customer, ok := customers[review.CustomerID]
		if !ok {
			return ItemResponse{}, fmt.Errorf("item %d review %d customer %d: %w",
				item.ID, review.ID, review.CustomerID, ErrRelationNotLoaded)
		}
		nested[i] = ItemReview{
			ID:       review.ID,
			Comment:  review.Comment,
			Customer: CustomerToSummary(customer),
		}
	}

	return ItemResponse{
		ID:      item.ID,
		Name:    item.Name,
		Price:   item.Price,
		Reviews: nested,
	}, nil
}

// WithCustomers adds the derived customers view.
func (i ItemResponse) WithCustomers(customers []*entity.Customer) ItemResponse {
	summaries := CustomersToSummaries(customers)
	i.Customers = &summaries
	return i
}
