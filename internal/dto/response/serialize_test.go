package response_test

import (
	"encoding/json"
	"testing"

	"customer-reviews/internal/data/entity"
	"customer-reviews/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

var (
	ana  = &entity.Customer{ID: 1, Name: "Ana"}
	ben  = &entity.Customer{ID: 2, Name: "Ben"}
	mug  = &entity.Item{ID: 1, Name: "Mug", Price: 9.99}
	lamp = &entity.Item{ID: 2, Name: "Lamp", Price: 24.5}

	great = &entity.Review{ID: 1, Comment: strPtr("Great"), CustomerID: 1, ItemID: 1}
	dim   = &entity.Review{ID: 2, Comment: strPtr("Dim"), CustomerID: 1, ItemID: 2}
	chip  = &entity.Review{ID: 3, Comment: nil, CustomerID: 2, ItemID: 1}
)

func TestCustomerToResponse_SingleReview(t *testing.T) {
	resp, err := response.CustomerToResponse(ana, []*entity.Review{great}, entity.IndexItems([]*entity.Item{mug}))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"id":1,"name":"Ana","reviews":[{"id":1,"comment":"Great","item":{"id":1,"name":"Mug","price":9.99}}]}`,
		marshal(t, resp))
}

func TestCustomerToResponse_NoBackReferences(t *testing.T) {
	resp, err := response.CustomerToResponse(ana, []*entity.Review{great, dim},
		entity.IndexItems([]*entity.Item{mug, lamp}))
	require.NoError(t, err)

	out := decode(t, marshal(t, resp))
	assert.NotContains(t, out, "items")

	reviews := out["reviews"].([]any)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		review := r.(map[string]any)
		assert.NotContains(t, review, "customer")
		assert.NotContains(t, review, "item_id")
		assert.NotContains(t, review, "customer_id")

		item := review["item"].(map[string]any)
		assert.NotContains(t, item, "reviews")
		assert.NotContains(t, item, "customers")
	}
}

func TestCustomerToResponse_NoReviews(t *testing.T) {
	resp, err := response.CustomerToResponse(ben, nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":2,"name":"Ben","reviews":[]}`, marshal(t, resp))
}

func TestCustomerToResponse_WithItems(t *testing.T) {
	reviews := []*entity.Review{great, dim}
	items := entity.IndexItems([]*entity.Item{mug, lamp})

	resp, err := response.CustomerToResponse(ana, reviews, items)
	require.NoError(t, err)
	resp = resp.WithItems(entity.ItemsOf(reviews, items))

	out := decode(t, marshal(t, resp))
	assert.Equal(t, []any{
		map[string]any{"id": float64(1), "name": "Mug", "price": 9.99},
		map[string]any{"id": float64(2), "name": "Lamp", "price": 24.5},
	}, out["items"])

	empty := resp.WithItems(nil)
	assert.Equal(t, []any{}, decode(t, marshal(t, empty))["items"])
}

func TestCustomerToResponse_ItemNotLoaded(t *testing.T) {
	_, err := response.CustomerToResponse(ana, []*entity.Review{great, dim},
		entity.IndexItems([]*entity.Item{mug}))
	assert.ErrorIs(t, err, response.ErrRelationNotLoaded)
}

func TestItemToResponse(t *testing.T) {
	resp, err := response.ItemToResponse(mug, []*entity.Review{great, chip},
		entity.IndexCustomers([]*entity.Customer{ana, ben}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1, "name": "Mug", "price": 9.99,
		"reviews": [
			{"id": 1, "comment": "Great", "customer": {"id": 1, "name": "Ana"}},
			{"id": 3, "comment": null, "customer": {"id": 2, "name": "Ben"}}
		]
	}`, marshal(t, resp))
}

func TestItemToResponse_WithCustomers(t *testing.T) {
	reviews := []*entity.Review{great, chip}
	customers := entity.IndexCustomers([]*entity.Customer{ana, ben})

	resp, err := response.ItemToResponse(mug, reviews, customers)
	require.NoError(t, err)
	resp = resp.WithCustomers(entity.CustomersOf(reviews, customers))

	out := decode(t, marshal(t, resp))
	assert.Equal(t, []any{
		map[string]any{"id": float64(1), "name": "Ana"},
		map[string]any{"id": float64(2), "name": "Ben"},
	}, out["customers"])
}

func TestItemToResponse_CustomerNotLoaded(t *testing.T) {
	_, err := response.ItemToResponse(mug, []*entity.Review{chip}, nil)
	assert.ErrorIs(t, err, response.ErrRelationNotLoaded)
}

func TestReviewToResponse(t *testing.T) {
	resp, err := response.ReviewToResponse(great, ana, mug)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": 1, "comment": "Great", "customer_id": 1, "item_id": 1,
		"customer": {"id": 1, "name": "Ana"},
		"item": {"id": 1, "name": "Mug", "price": 9.99}
	}`, marshal(t, resp))
}

func TestReviewToResponse_RelationMismatch(t *testing.T) {
	tests := []struct {
		name     string
		customer *entity.Customer
		item     *entity.Item
	}{
		{"missing customer", nil, mug},
		{"missing item", ana, nil},
		{"wrong customer", ben, mug},
		{"wrong item", ana, lamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := response.ReviewToResponse(great, tt.customer, tt.item)
			assert.ErrorIs(t, err, response.ErrRelationNotLoaded)
		})
	}
}

func TestReviewsToResponse(t *testing.T) {
	out, err := response.ReviewsToResponse([]*entity.Review{great, chip},
		entity.IndexCustomers([]*entity.Customer{ana, ben}),
		entity.IndexItems([]*entity.Item{mug}))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Ben", out[1].Customer.Name)
	assert.Nil(t, out[1].Comment)

	_, err = response.ReviewsToResponse([]*entity.Review{dim},
		entity.IndexCustomers([]*entity.Customer{ana}), nil)
	assert.ErrorIs(t, err, response.ErrRelationNotLoaded)
}

func TestNewPaginatedResponse(t *testing.T) {
	page := response.NewPaginatedResponse([]int{1, 2}, 2, 2, 5)
	assert.Equal(t, response.PaginationMeta{Total: 5, Page: 2, PerPage: 2, TotalPages: 3}, page.Pagination)

	empty := response.NewPaginatedResponse([]int{}, 1, 10, 0)
	assert.Equal(t, 0, empty.Pagination.TotalPages)
}
