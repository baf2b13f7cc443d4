//go:build integration

package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	inventoryrepo "github.com/fekuna/omnipos-storefront/internal/inventory/repository"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	orderrepo "github.com/fekuna/omnipos-storefront/internal/order/repository"
	regionrepo "github.com/fekuna/omnipos-storefront/internal/region/repository"
	"github.com/fekuna/omnipos-storefront/internal/testutil"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.ConnectContext(ctx, database.DriverPostgres, dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(20)
	t.Cleanup(func() { _ = db.Close() })

	_, err = database.Migrate(ctx, db)
	require.NoError(t, err)
	return db
}

func TestPostgresConcurrentOrdersNeverOversell(t *testing.T) {
	db := newPostgres(t)
	events := &broker.Recorder{}
	uc := NewOrderUseCase(Deps{
		Repo:      orderrepo.NewPGRepository(db),
		Inventory: inventoryrepo.NewPGRepository(db),
		Regions:   regionrepo.NewPGRepository(db),
		Tx:        database.NewTxManager(db),
		Publisher: events,
		Topic:     "storefront.orders",
		Logger:    logger.NewNop(),
	})

	productID := testutil.SeedProduct(t, db, testutil.Product{Slug: "tee", BasePrice: "45.00"})
	variantID := testutil.SeedVariant(t, db, testutil.Variant{ProductID: productID, SKU: "tee-m", Size: "M", Stock: 5})

	const buyers = 12
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		placed   int
		rejected int
	)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.PlaceOrder(ctx, &dto.PlaceOrderInput{
				CustomerEmail: "buyer@example.com",
				Items:         []dto.OrderItemInput{{VariantID: variantID, Quantity: 1}},
				ShippingAddress: &model.Address{
					AddressLine1: "1 Main St",
					City:         "Springfield",
					CountryCode:  "US",
				},
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				placed++
			case assert.ErrorIs(t, err, apperror.ErrInsufficientStock):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, placed)
	assert.Equal(t, buyers-5, rejected)
	assert.Zero(t, testutil.Stock(t, db, variantID))
	assert.Equal(t, 5, testutil.Count(t, db, "orders", ""))
	assert.Equal(t, 5, testutil.Count(t, db, "inventory_movements", "movement_type = ?", model.MovementTypeSale))
	assert.Len(t, events.Snapshot(), 5)
}
