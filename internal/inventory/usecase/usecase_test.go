package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/inventory"
	"github.com/fekuna/omnipos-storefront/internal/inventory/dto"
	inventoryrepo "github.com/fekuna/omnipos-storefront/internal/inventory/repository"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/testutil"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(db *sqlx.DB) inventory.UseCase {
	return NewInventoryUseCase(inventoryrepo.NewPGRepository(db), database.NewTxManager(db), nil, logger.NewNop())
}

func seedVariant(t *testing.T, db *sqlx.DB, sku string, stock int) int64 {
	t.Helper()
	productID := testutil.SeedProduct(t, db, testutil.Product{Slug: sku})
	return testutil.SeedVariant(t, db, testutil.Variant{ProductID: productID, SKU: sku, Size: "M", Stock: stock})
}

func TestAdjustInventory(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newUseCase(db)
	ctx := context.Background()
	variantID := seedVariant(t, db, "tee-m", 4)

	m, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{
		VariantID:      variantID,
		QuantityChange: -3,
		Reason:         " damaged ",
		Operator:       "ops",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, m.QuantityBefore)
	assert.Equal(t, 1, m.QuantityAfter)
	assert.Equal(t, model.MovementTypeAdjustment, m.MovementType)
	assert.Equal(t, "damaged", m.Notes)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "ops", *m.CreatedBy)
	assert.NotZero(t, m.ID)
	assert.Equal(t, 1, testutil.Stock(t, db, variantID))
}

func TestAdjustInventoryNeverGoesNegative(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newUseCase(db)
	ctx := context.Background()
	variantID := seedVariant(t, db, "tee-m", 2)

	_, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{VariantID: variantID, QuantityChange: -3})
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Equal(t, 2, testutil.Stock(t, db, variantID))
	assert.Zero(t, testutil.Count(t, db, "inventory_movements", ""))

	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{VariantID: variantID, QuantityChange: -2})
	require.NoError(t, err)
	assert.Zero(t, testutil.Stock(t, db, variantID))

	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{VariantID: variantID, QuantityChange: 0})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestListMovementsPaging(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newUseCase(db)
	ctx := context.Background()
	a := seedVariant(t, db, "a", 0)
	b := seedVariant(t, db, "b", 0)

	for i := 0; i < 3; i++ {
		_, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{VariantID: a, QuantityChange: 1})
		require.NoError(t, err)
	}
	_, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{VariantID: b, QuantityChange: 5})
	require.NoError(t, err)

	filters := &dto.MovementFilters{VariantID: &a, Page: 1, PageSize: 2}
	items, total, err := uc.ListMovements(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 2)

	filters = &dto.MovementFilters{VariantID: &a, Page: 2, PageSize: 2}
	items, _, err = uc.ListMovements(ctx, filters)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	filters = &dto.MovementFilters{MovementType: model.MovementTypeSale, PageSize: 1000}
	items, total, err = uc.ListMovements(ctx, filters)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
	assert.Equal(t, 1, filters.Page)
	assert.Equal(t, maxPageSize, filters.PageSize)
}

func TestListLowStock(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newUseCase(db)
	seedVariant(t, db, "low", 5)
	seedVariant(t, db, "ok", 6)
	seedVariant(t, db, "out", 0)

	low, err := uc.ListLowStock(context.Background())
	require.NoError(t, err)
	var skus []string
	for _, v := range low {
		skus = append(skus, v.SKU)
	}
	assert.ElementsMatch(t, []string{"low", "out"}, skus)
}
