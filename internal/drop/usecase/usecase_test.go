package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-storefront/internal/drop"
	droprepo "github.com/fekuna/omnipos-storefront/internal/drop/repository"
	"github.com/fekuna/omnipos-storefront/internal/product"
	productrepo "github.com/fekuna/omnipos-storefront/internal/product/repository"
	"github.com/fekuna/omnipos-storefront/internal/testutil"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(db *sqlx.DB, c cache.Cache) drop.UseCase {
	return NewDropUseCase(droprepo.NewPGRepository(db), productrepo.NewPGRepository(db), c, time.Minute, logger.NewNop())
}

func TestListDropsByStatus(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newUseCase(db, nil)
	ctx := context.Background()

	early := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	testutil.SeedDrop(t, db, testutil.Drop{Slug: "undated", Status: "past"})
	testutil.SeedDrop(t, db, testutil.Drop{Slug: "winter", Status: "past", LaunchDate: &early})
	testutil.SeedDrop(t, db, testutil.Drop{Slug: "summer", Status: "past", LaunchDate: &late})
	testutil.SeedDrop(t, db, testutil.Drop{Slug: "next", Status: "coming_soon"})

	past, err := uc.ListDrops(ctx, "past")
	require.NoError(t, err)
	var got []string
	for _, d := range past {
		got = append(got, d.Slug)
	}
	assert.Equal(t, []string{"summer", "winter", "undated"}, got)

	current, err := uc.ListDrops(ctx, "current")
	require.NoError(t, err)
	assert.NotNil(t, current)
	assert.Empty(t, current)

	_, err = uc.ListDrops(ctx, "archived")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.EqualError(t, err, "Invalid status")
}

func TestGetDrop(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newUseCase(db, nil)
	ctx := context.Background()

	dropID := testutil.SeedDrop(t, db, testutil.Drop{Slug: "fall", Name: "Fall"})
	testutil.SeedProduct(t, db, testutil.Product{Slug: "tee", DropID: &dropID})
	testutil.SeedProduct(t, db, testutil.Product{Slug: "hidden", DropID: &dropID, Inactive: true})
	testutil.SeedProduct(t, db, testutil.Product{Slug: "other"})

	detail, err := uc.GetDrop(ctx, "fall")
	require.NoError(t, err)
	assert.Equal(t, "Fall", detail.Drop.Name)
	require.Len(t, detail.Products, 1)
	assert.Equal(t, "tee", detail.Products[0].Slug)

	_, err = uc.GetDrop(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualError(t, err, "Drop not found")
}

func TestGetDropIsCachedBySlug(t *testing.T) {
	db := testutil.NewDB(t)
	mr := miniredis.RunT(t)
	redisClient, err := cache.NewRedisClient(&cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	uc := newUseCase(db, redisClient)
	ctx := context.Background()
	dropID := testutil.SeedDrop(t, db, testutil.Drop{Slug: "fall"})

	first, err := uc.GetDrop(ctx, "fall")
	require.NoError(t, err)
	assert.Empty(t, first.Products)
	assert.True(t, mr.Exists(product.DropCacheKeyPrefix+"fall"))

	testutil.SeedProduct(t, db, testutil.Product{Slug: "tee", DropID: &dropID})
	cached, err := uc.GetDrop(ctx, "fall")
	require.NoError(t, err)
	assert.Empty(t, cached.Products)

	product.InvalidateStockCaches(ctx, redisClient, logger.NewNop())
	fresh, err := uc.GetDrop(ctx, "fall")
	require.NoError(t, err)
	assert.Len(t, fresh.Products, 1)
}

func TestListForAdminCountsProducts(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newUseCase(db, nil)

	dropID := testutil.SeedDrop(t, db, testutil.Drop{Slug: "fall"})
	testutil.SeedDrop(t, db, testutil.Drop{Slug: "empty"})
	testutil.SeedProduct(t, db, testutil.Product{Slug: "tee", DropID: &dropID})
	testutil.SeedProduct(t, db, testutil.Product{Slug: "hoodie", DropID: &dropID, Inactive: true})

	drops, err := uc.ListForAdmin(context.Background())
	require.NoError(t, err)
	counts := map[string]int64{}
	for _, d := range drops {
		counts[d.Slug] = d.ProductCount
	}
	assert.Equal(t, map[string]int64{"fall": 2, "empty": 0}, counts)
}
