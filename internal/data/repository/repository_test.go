package repository_test

import (
	"context"
	"testing"

	"customer-reviews/internal/data/entity"
	"customer-reviews/internal/data/repository"
	"customer-reviews/pkg/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// newSQLiteRepo returns repositories over a fresh in-memory database.
func newSQLiteRepo(tb testing.TB) *repository.Repository {
	tb.Helper()

	db, err := database.InitSQLite(":memory:")
	require.NoError(tb, err)
	tb.Cleanup(func() { db.Close() })

	require.NoError(tb, database.MigrateSQLite(context.Background(), db))

	return repository.NewSQLiteRepository(db, zaptest.NewLogger(tb))
}

type fixture struct {
	ana, ben  *entity.Customer
	mug, lamp *entity.Item
	reviews   []*entity.Review
}

// seed creates two customers, two items and four reviews:
// ana->mug, ana->lamp, ben->mug, ana->mug.
func seed(tb testing.TB, repo *repository.Repository) fixture {
	tb.Helper()
	ctx := context.Background()

	f := fixture{
		ana:  &entity.Customer{Name: "Ana"},
		ben:  &entity.Customer{Name: "Ben"},
		mug:  &entity.Item{Name: "Mug", Price: 9.99},
		lamp: &entity.Item{Name: "Lamp", Price: 24.5},
	}
	require.NoError(tb, repo.Customer.Create(ctx, f.ana))
	require.NoError(tb, repo.Customer.Create(ctx, f.ben))
	require.NoError(tb, repo.Item.Create(ctx, f.mug))
	require.NoError(tb, repo.Item.Create(ctx, f.lamp))

	pairs := []struct {
		c       *entity.Customer
		i       *entity.Item
		comment string
	}{
		{f.ana, f.mug, "Great"},
		{f.ana, f.lamp, "Too bright"},
		{f.ben, f.mug, "Chipped"},
		{f.ana, f.mug, "Still great"},
	}
	for _, p := range pairs {
		comment := p.comment
		r := &entity.Review{Comment: &comment, CustomerID: p.c.ID, ItemID: p.i.ID}
		require.NoError(tb, repo.Review.Create(ctx, r))
		require.NotZero(tb, r.ID)
		f.reviews = append(f.reviews, r)
	}

	return f
}
