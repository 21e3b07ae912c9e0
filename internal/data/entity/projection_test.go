package entity_test

import (
	"testing"

	"customer-reviews/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestProjections(t *testing.T) {
	ana := &entity.Customer{ID: 1, Name: "Ana"}
	ben := &entity.Customer{ID: 2, Name: "Ben"}
	mug := &entity.Item{ID: 10, Name: "Mug", Price: 9.99}
	lamp := &entity.Item{ID: 11, Name: "Lamp", Price: 24.5}

	reviews := []*entity.Review{
		{ID: 1, CustomerID: 1, ItemID: 10},
		{ID: 2, CustomerID: 2, ItemID: 11},
		{ID: 3, CustomerID: 1, ItemID: 10},
	}

	items := entity.IndexItems([]*entity.Item{mug, lamp})
	customers := entity.IndexCustomers([]*entity.Customer{ana, ben})

	assert.Equal(t, []*entity.Item{mug, lamp, mug}, entity.ItemsOf(reviews, items))
	assert.Equal(t, []*entity.Customer{ana, ben, ana}, entity.CustomersOf(reviews, customers))
	assert.Equal(t, []int64{10, 11}, entity.ItemIDs(reviews))
	assert.Equal(t, []int64{1, 2}, entity.CustomerIDs(reviews))

	assert.Empty(t, entity.ItemsOf(nil, items))
	assert.Equal(t, []*entity.Item{lamp}, entity.ItemsOf(reviews, entity.IndexItems([]*entity.Item{lamp})))
}

func TestGroupBy(t *testing.T) {
	r1 := &entity.Review{ID: 1, CustomerID: 1, ItemID: 10}
	r2 := &entity.Review{ID: 2, CustomerID: 2, ItemID: 10}
	r3 := &entity.Review{ID: 3, CustomerID: 1, ItemID: 11}

	byCustomer := entity.GroupByCustomer([]*entity.Review{r1, r2, r3})
	assert.Equal(t, []*entity.Review{r1, r3}, byCustomer[1])
	assert.Equal(t, []*entity.Review{r2}, byCustomer[2])
	assert.Nil(t, byCustomer[3])

	byItem := entity.GroupByItem([]*entity.Review{r1, r2, r3})
	assert.Equal(t, []*entity.Review{r1, r2}, byItem[10])
	assert.Equal(t, []*entity.Review{r3}, byItem[11])
}
