package response

import (
	"errors"

	"customer-reviews/internal/data/entity"
)

// ErrRelationNotLoaded is returned when a converter is handed a review whose
// customer or item was not loaded alongside it.
var ErrRelationNotLoaded = errors.New("relation not loaded")

// CustomerSummary is a customer one hop away from the root: no reviews.
type CustomerSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemSummary is an item one hop away from the root: no reviews.
type ItemSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func CustomerToSummary(customer *entity.Customer) CustomerSummary {
	return CustomerSummary{
		ID:   customer.ID,
		Name: customer.Name,
	}
}

func ItemToSummary(item *entity.Item) ItemSummary {
	return ItemSummary{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price,
	}
}

func CustomersToSummaries(customers []*entity.Customer) []CustomerSummary {
	out := make([]CustomerSummary, len(customers))
	for i, c := range customers {
		out[i] = CustomerToSummary(c)
	}
	return out
}

func ItemsToSummaries(items []*entity.Item) []ItemSummary {
	out := make([]ItemSummary, len(items))
	for i, it := range items {
		out[i] = ItemToSummary(it)
	}
	return out
}
