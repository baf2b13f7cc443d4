// Package testutil opens migrated SQLite databases and seeds catalog rows
// for package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// NewDB returns a fresh, migrated file database under t.TempDir.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(context.Background(), db)
	require.NoError(t, err)
	return db
}

func insert(t testing.TB, db *sqlx.DB, query string, args ...interface{}) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowxContext(context.Background(), db.Rebind(query+" RETURNING id"), args...).Scan(&id)
	require.NoError(t, err)
	return id
}

// Count returns SELECT COUNT(*) over table with an optional where clause.
func Count(t testing.TB, db *sqlx.DB, table, where string, args ...interface{}) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.GetContext(context.Background(), &n, db.Rebind(query), args...))
	return n
}

// Stock reads a variant's current stock quantity.
func Stock(t testing.TB, db *sqlx.DB, variantID int64) int {
	t.Helper()
	var n int
	require.NoError(t, db.GetContext(context.Background(), &n,
		db.Rebind("SELECT stock_quantity FROM product_variants WHERE id = ?"), variantID))
	return n
}
