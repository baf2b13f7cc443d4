package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-storefront/internal/subscription"
	"github.com/fekuna/omnipos-storefront/internal/subscription/dto"
	"github.com/fekuna/omnipos-storefront/internal/subscription/repository"
	"github.com/fekuna/omnipos-storefront/internal/testutil"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*sqlx.DB, subscription.UseCase) {
	t.Helper()
	db := testutil.NewDB(t)
	return db, NewSubscriptionUseCase(repository.NewPGRepository(db), logger.NewNop())
}

func TestSubscribeTwiceKeepsOneRow(t *testing.T) {
	db, uc := setup(t)
	ctx := context.Background()

	first, err := uc.Subscribe(ctx, &dto.SubscribeInput{Email: "fan@example.com", Name: "Fan"})
	require.NoError(t, err)
	assert.True(t, first.Success)
	assert.Equal(t, "Successfully subscribed!", first.Message)

	second, err := uc.Subscribe(ctx, &dto.SubscribeInput{Email: " FAN@example.com "})
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.Equal(t, "Already subscribed", second.Message)

	assert.Equal(t, 1, testutil.Count(t, db, "email_subscribers", ""))

	subs, err := uc.ListSubscribers(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "website", subs[0].Source)
	require.NotNil(t, subs[0].Name)
	assert.Equal(t, "Fan", *subs[0].Name)
}

func TestSubscribeRejectsBadEmail(t *testing.T) {
	_, uc := setup(t)
	for _, email := range []string{"", "not-an-email"} {
		_, err := uc.Subscribe(context.Background(), &dto.SubscribeInput{Email: email})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, email)
	}
}

func TestNotifyDrop(t *testing.T) {
	db, uc := setup(t)
	ctx := context.Background()
	dropID := testutil.SeedDrop(t, db, testutil.Drop{Slug: "spring", Status: "coming_soon"})

	res, err := uc.NotifyDrop(ctx, dropID, &dto.DropNotifyInput{Email: "a@example.com"})
	require.NoError(t, err)
	assert.True(t, res.Success)

	res, err = uc.NotifyDrop(ctx, dropID, &dto.DropNotifyInput{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Already registered", res.Message)
	assert.Equal(t, 1, testutil.Count(t, db, "drop_notifications", ""))

	_, err = uc.NotifyDrop(ctx, dropID+100, &dto.DropNotifyInput{Email: "a@example.com"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestNotifyStock(t *testing.T) {
	db, uc := setup(t)
	ctx := context.Background()
	productID := testutil.SeedProduct(t, db, testutil.Product{Slug: "tee"})
	variantID := testutil.SeedVariant(t, db, testutil.Variant{ProductID: productID, SKU: "tee-s"})

	for i := 0; i < 2; i++ {
		res, err := uc.NotifyStock(ctx, &dto.StockNotifyInput{Email: "b@example.com", VariantID: variantID})
		require.NoError(t, err)
		assert.True(t, res.Success)
	}
	assert.Equal(t, 1, testutil.Count(t, db, "stock_notifications", ""))

	_, err := uc.NotifyStock(ctx, &dto.StockNotifyInput{Email: "b@example.com", VariantID: 999})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
