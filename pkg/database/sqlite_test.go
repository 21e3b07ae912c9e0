package database_test

import (
	"context"
	"testing"

	"customer-reviews/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSQLite_Idempotent(t *testing.T) {
	db, err := database.InitSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, database.MigrateSQLite(ctx, db))
	require.NoError(t, database.MigrateSQLite(ctx, db))

	var tables []string
	require.NoError(t, db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{"customers", "items", "reviews"}, tables)
}

func TestSQLiteForeignKeys(t *testing.T) {
	db, err := database.InitSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, database.MigrateSQLite(ctx, db))

	db.MustExecContext(ctx, `INSERT INTO customers (name) VALUES ('Ana')`)
	db.MustExecContext(ctx, `INSERT INTO items (name, price) VALUES ('Mug', 9.99)`)
	db.MustExecContext(ctx, `INSERT INTO reviews (comment, customer_id, item_id) VALUES ('Great', 1, 1)`)

	_, err = db.ExecContext(ctx, `INSERT INTO reviews (customer_id, item_id) VALUES (7, 1)`)
	assert.Error(t, err, "dangling customer_id must be rejected")

	db.MustExecContext(ctx, `DELETE FROM customers WHERE id = 1`)

	var count int
	require.NoError(t, db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reviews`))
	assert.Zero(t, count, "reviews follow their customer")
}
