package usecase

import (
	"context"
	"testing"

	regionrepo "github.com/fekuna/omnipos-storefront/internal/region/repository"
	"github.com/fekuna/omnipos-storefront/internal/testutil"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetShipping(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewRegionUseCase(regionrepo.NewPGRepository(db))
	ctx := context.Background()

	us := testutil.SeedRegion(t, db, "US", "USD", "0.0825")
	testutil.SeedShippingMethod(t, db, us, "Express", "25.00")
	testutil.SeedShippingMethod(t, db, us, "Standard", "8.00")
	_, err := db.Exec(`UPDATE shipping_methods SET is_active = FALSE WHERE name = 'Express'`)
	require.NoError(t, err)
	testutil.SeedShippingMethod(t, db, us, "Overnight", "40.00")

	res, err := uc.GetShipping(ctx, "us")
	require.NoError(t, err)
	assert.Equal(t, "US", res.Region.Code)
	assert.Equal(t, "0.0825", res.Region.TaxRate.String())

	var names []string
	for _, m := range res.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Standard", "Overnight"}, names)

	_, err = uc.GetShipping(ctx, "XX")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualError(t, err, "Region not found")
}

func TestListRegionsSkipsInactive(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewRegionUseCase(regionrepo.NewPGRepository(db))

	testutil.SeedRegion(t, db, "US", "USD", "0")
	testutil.SeedRegion(t, db, "EU", "EUR", "0.2")
	_, err := db.Exec(`UPDATE regions SET is_active = FALSE WHERE code = 'EU'`)
	require.NoError(t, err)

	regions, err := uc.ListRegions(context.Background())
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "US", regions[0].Code)

	_, err = uc.GetShipping(context.Background(), "EU")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
