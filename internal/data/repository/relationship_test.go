package repository_test

import (
	"context"
	"errors"
	"testing"

	"customer-reviews/internal/data/entity"
	"customer-reviews/internal/data/repository"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRelationships(t *testing.T) {
	runRelationshipSuite(t, newSQLiteRepo)
}

func TestSQLiteCreateReview_DriverErrorKept(t *testing.T) {
	repo := newSQLiteRepo(t)
	f := seed(t, repo)

	err := repo.Review.Create(context.Background(), &entity.Review{CustomerID: 999, ItemID: f.mug.ID})
	require.ErrorIs(t, err, repository.ErrConstraintViolation)

	var sqliteErr sqlite3.Error
	require.True(t, errors.As(err, &sqliteErr))
	assert.Equal(t, sqlite3.ErrConstraintForeignKey, sqliteErr.ExtendedCode)
}

// runRelationshipSuite checks the relationship guarantees against any driver.
func runRelationshipSuite(t *testing.T, newRepo func(testing.TB) *repository.Repository) {
	ctx := context.Background()

	t.Run("review resolves its customer and item", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		for _, want := range f.reviews {
			got, err := repo.Review.FindByID(ctx, want.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, want, got)

			customer, err := repo.Customer.FindByID(ctx, got.CustomerID)
			require.NoError(t, err)
			require.NotNil(t, customer)
			assert.Equal(t, got.CustomerID, customer.ID)

			item, err := repo.Item.FindByID(ctx, got.ItemID)
			require.NoError(t, err)
			require.NotNil(t, item)
			assert.Equal(t, got.ItemID, item.ID)
		}
	})

	t.Run("missing records return nil", func(t *testing.T) {
		repo := newRepo(t)

		customer, err := repo.Customer.FindByID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, customer)

		item, err := repo.Item.FindByID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, item)

		review, err := repo.Review.FindByID(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, review)
	})

	t.Run("review with unknown customer or item is rejected", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		err := repo.Review.Create(ctx, &entity.Review{CustomerID: 999, ItemID: f.mug.ID})
		assert.ErrorIs(t, err, repository.ErrConstraintViolation)

		err = repo.Review.Create(ctx, &entity.Review{CustomerID: f.ana.ID, ItemID: 999})
		assert.ErrorIs(t, err, repository.ErrConstraintViolation)

		count, err := repo.Review.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(len(f.reviews)), count)
	})

	t.Run("navigation follows insertion order", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		anaReviews, err := repo.Review.FindByCustomerID(ctx, f.ana.ID)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Review{f.reviews[0], f.reviews[1], f.reviews[3]}, anaReviews)

		mugReviews, err := repo.Review.FindByItemID(ctx, f.mug.ID)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Review{f.reviews[0], f.reviews[2], f.reviews[3]}, mugReviews)
	})

	t.Run("customer items equal projection of customer reviews", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		reviews, err := repo.Review.FindByCustomerID(ctx, f.ana.ID)
		require.NoError(t, err)
		loaded, err := repo.Item.FindByIDs(ctx, entity.ItemIDs(reviews))
		require.NoError(t, err)

		items, err := repo.Item.FindByCustomerID(ctx, f.ana.ID)
		require.NoError(t, err)

		assert.Equal(t, entity.ItemsOf(reviews, entity.IndexItems(loaded)), items)
		assert.Equal(t, []*entity.Item{f.mug, f.lamp, f.mug}, items)
	})

	t.Run("item customers equal projection of item reviews", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		reviews, err := repo.Review.FindByItemID(ctx, f.mug.ID)
		require.NoError(t, err)
		loaded, err := repo.Customer.FindByIDs(ctx, entity.CustomerIDs(reviews))
		require.NoError(t, err)

		customers, err := repo.Customer.FindByItemID(ctx, f.mug.ID)
		require.NoError(t, err)

		assert.Equal(t, entity.CustomersOf(reviews, entity.IndexCustomers(loaded)), customers)
		assert.Equal(t, []*entity.Customer{f.ana, f.ben, f.ana}, customers)
	})

	t.Run("derived views follow review changes", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		require.NoError(t, repo.Review.Delete(ctx, f.reviews[1].ID))

		items, err := repo.Item.FindByCustomerID(ctx, f.ana.ID)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Item{f.mug, f.mug}, items)

		customers, err := repo.Customer.FindByItemID(ctx, f.lamp.ID)
		require.NoError(t, err)
		assert.Empty(t, customers)
	})

	t.Run("deleting a customer removes its reviews only", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		removed, err := repo.Customer.Delete(ctx, f.ana.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)

		customer, err := repo.Customer.FindByID(ctx, f.ana.ID)
		require.NoError(t, err)
		assert.Nil(t, customer)

		left, err := repo.Review.FindAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Review{f.reviews[2]}, left)

		for _, item := range []*entity.Item{f.mug, f.lamp} {
			got, err := repo.Item.FindByID(ctx, item.ID)
			require.NoError(t, err)
			assert.Equal(t, item, got)
		}
	})

	t.Run("deleting an item removes its reviews only", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		removed, err := repo.Item.Delete(ctx, f.mug.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)

		left, err := repo.Review.FindAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Review{f.reviews[1]}, left)

		count, err := repo.Customer.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("deleting a review leaves customer and item", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		require.NoError(t, repo.Review.Delete(ctx, f.reviews[2].ID))

		ben, err := repo.Customer.FindByID(ctx, f.ben.ID)
		require.NoError(t, err)
		assert.Equal(t, f.ben, ben)

		mug, err := repo.Item.FindByID(ctx, f.mug.ID)
		require.NoError(t, err)
		assert.Equal(t, f.mug, mug)
	})

	t.Run("missing targets report not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Customer.Delete(ctx, 7)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.Item.Delete(ctx, 7)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.ErrorIs(t, repo.Review.Delete(ctx, 7), repository.ErrNotFound)
		assert.ErrorIs(t, repo.Customer.Update(ctx, &entity.Customer{ID: 7, Name: "x"}), repository.ErrNotFound)
		assert.ErrorIs(t, repo.Item.Update(ctx, &entity.Item{ID: 7, Name: "x"}), repository.ErrNotFound)
		assert.ErrorIs(t, repo.Review.Update(ctx, &entity.Review{ID: 7}), repository.ErrNotFound)
	})

	t.Run("updates mutate fields in place", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		f.lamp.Name, f.lamp.Price = "Desk lamp", 19.0
		require.NoError(t, repo.Item.Update(ctx, f.lamp))

		f.ben.Name = "Benjamin"
		require.NoError(t, repo.Customer.Update(ctx, f.ben))

		comment := "Replaced, fine now"
		f.reviews[2].Comment = &comment
		require.NoError(t, repo.Review.Update(ctx, f.reviews[2]))

		lamp, err := repo.Item.FindByID(ctx, f.lamp.ID)
		require.NoError(t, err)
		assert.Equal(t, f.lamp, lamp)

		ben, err := repo.Customer.FindByID(ctx, f.ben.ID)
		require.NoError(t, err)
		assert.Equal(t, "Benjamin", ben.Name)

		review, err := repo.Review.FindByID(ctx, f.reviews[2].ID)
		require.NoError(t, err)
		require.NotNil(t, review.Comment)
		assert.Equal(t, comment, *review.Comment)
	})

	t.Run("null comment round trips", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		review := &entity.Review{CustomerID: f.ben.ID, ItemID: f.lamp.ID}
		require.NoError(t, repo.Review.Create(ctx, review))

		got, err := repo.Review.FindByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Comment)
	})

	t.Run("pagination and counts", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		page, err := repo.Review.FindAll(ctx, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Review{f.reviews[2], f.reviews[3]}, page)

		customers, err := repo.Customer.FindAll(ctx, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Customer{f.ben}, customers)

		items, err := repo.Item.FindAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, []*entity.Item{f.mug, f.lamp}, items)

		count, err := repo.Item.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("batch lookups skip unknown ids", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		customers, err := repo.Customer.FindByIDs(ctx, []int64{f.ben.ID, 999, f.ana.ID})
		require.NoError(t, err)
		assert.Equal(t, []*entity.Customer{f.ana, f.ben}, customers)

		items, err := repo.Item.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
	t.Run("reviews load for many parents at once", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		byCustomers, err := repo.Review.FindByCustomerIDs(ctx, []int64{f.ben.ID, f.ana.ID, 999})
		require.NoError(t, err)
		assert.Equal(t, f.reviews, byCustomers)

		byItems, err := repo.Review.FindByItemIDs(ctx, []int64{f.lamp.ID})
		require.NoError(t, err)
		assert.Equal(t, []*entity.Review{f.reviews[1]}, byItems)

		none, err := repo.Review.FindByCustomerIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("read transaction sees committed data and passes errors through", func(t *testing.T) {
		repo := newRepo(t)
		f := seed(t, repo)

		err := repo.ReadOnly(ctx, func(tx *repository.Repository) error {
			customer, err := tx.Customer.FindByID(ctx, f.ana.ID)
			require.NoError(t, err)
			assert.Equal(t, f.ana, customer)

			reviews, err := tx.Review.FindByCustomerID(ctx, f.ana.ID)
			require.NoError(t, err)
			assert.Len(t, reviews, 3)

			return tx.ReadOnly(ctx, func(inner *repository.Repository) error {
				items, err := inner.Item.FindByCustomerID(ctx, f.ana.ID)
				require.NoError(t, err)
				assert.Len(t, items, 3)
				return nil
			})
		})
		require.NoError(t, err)

		sentinel := errors.New("stop")
		assert.ErrorIs(t, repo.ReadOnly(ctx, func(*repository.Repository) error { return sentinel }), sentinel)

		count, err := repo.Review.CountAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count, "repositories stay usable after a read transaction")
	})
}
