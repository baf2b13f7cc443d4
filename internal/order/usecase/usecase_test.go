package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	inventoryrepo "github.com/fekuna/omnipos-storefront/internal/inventory/repository"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	orderrepo "github.com/fekuna/omnipos-storefront/internal/order/repository"
	regionrepo "github.com/fekuna/omnipos-storefront/internal/region/repository"
	"github.com/fekuna/omnipos-storefront/internal/testutil"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/broker"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *sqlx.DB
	uc       order.UseCase
	events   *broker.Recorder
	shipping int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	regionID := testutil.SeedRegion(t, db, "US", "USD", "0.0825")
	shipping := testutil.SeedShippingMethod(t, db, regionID, "Standard", "12.50")

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
	return &fixture{db: db, uc: uc, events: events, shipping: shipping}
}

func (f *fixture) variant(t *testing.T, slug, base, adj string, stock int) int64 {
	t.Helper()
	productID := testutil.SeedProduct(t, f.db, testutil.Product{Slug: slug, BasePrice: base})
	return testutil.SeedVariant(t, f.db, testutil.Variant{
		ProductID:       productID,
		SKU:             slug + "-sku",
		Size:            "M",
		PriceAdjustment: adj,
		Stock:           stock,
	})
}

func orderInput(items ...dto.OrderItemInput) *dto.PlaceOrderInput {
	return &dto.PlaceOrderInput{
		CustomerEmail: "buyer@example.com",
		Items:         items,
		ShippingAddress: &model.Address{
			FirstName:    "Ada",
			AddressLine1: "1 Main St",
			City:         "Portland",
			CountryCode:  "US",
		},
	}
}

func TestPlaceOrderComputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hoodie := f.variant(t, "hoodie", "40.00", "5.00", 10)
	tee := f.variant(t, "tee", "40.00", "0", 3)

	input := orderInput(
		dto.OrderItemInput{VariantID: hoodie, Quantity: 2},
		dto.OrderItemInput{VariantID: tee, Quantity: 1},
	)
	input.ShippingMethodID = &f.shipping

	res, err := f.uc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "USD", res.Currency)
	assert.Regexp(t, `^ORD-[0-9A-F-]{36}$`, res.OrderNumber)

	// subtotal 2*45 + 40 = 130, tax round2(130*0.0825) = 10.73, shipping 12.50
	assert.True(t, decimal.RequireFromString("153.23").Equal(res.TotalAmount), res.TotalAmount.String())

	detail, err := f.uc.GetOrder(ctx, res.OrderNumber)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("130").Equal(detail.Subtotal))
	assert.True(t, decimal.RequireFromString("12.50").Equal(detail.ShippingCost))
	assert.True(t, decimal.RequireFromString("10.73").Equal(detail.TaxAmount))
	assert.True(t, detail.TotalAmount.Equal(detail.Subtotal.Add(detail.ShippingCost).Add(detail.TaxAmount)))
	assert.Equal(t, model.OrderStatusPending, detail.Status)
	assert.Equal(t, model.PaymentStatusPending, detail.PaymentStatus)

	require.Len(t, detail.Items, 2)
	sum := decimal.Zero
	for _, item := range detail.Items {
		assert.True(t, item.TotalPrice.Equal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))))
		sum = sum.Add(item.TotalPrice)
	}
	assert.True(t, sum.Equal(detail.Subtotal))

	require.NotNil(t, detail.ShippingAddress)
	assert.Equal(t, "Portland", detail.ShippingAddress.City)
	require.NotNil(t, detail.BillingAddress)
	assert.Equal(t, "1 Main St", detail.BillingAddress.AddressLine1)

	assert.Equal(t, 8, testutil.Stock(t, f.db, hoodie))
	assert.Equal(t, 2, testutil.Stock(t, f.db, tee))
	assert.Equal(t, 2, testutil.Count(t, f.db, "inventory_movements", "movement_type = ?", model.MovementTypeSale))

	events := f.events.Snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, "storefront.orders", events[0].Topic)
	assert.Equal(t, res.OrderNumber, events[0].Key)
	assert.Equal(t, EventOrderPlaced, events[0].Event.EventType)

	var payload dto.OrderPlaced
	require.NoError(t, json.Unmarshal(events[0].Event.Payload, &payload))
	assert.Equal(t, res.OrderID, payload.OrderID)
	assert.Len(t, payload.Items, 2)
}

func TestOrderItemPricesAreSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.variant(t, "hoodie", "40.00", "5.00", 4)

	res, err := f.uc.PlaceOrder(ctx, orderInput(dto.OrderItemInput{VariantID: v, Quantity: 2}))
	require.NoError(t, err)
	before, err := f.uc.GetOrder(ctx, res.OrderNumber)
	require.NoError(t, err)

	_, err = f.db.Exec(f.db.Rebind(`UPDATE products SET base_price = ? WHERE slug = ?`), "99.00", "hoodie")
	require.NoError(t, err)
	_, err = f.db.Exec(f.db.Rebind(`UPDATE product_variants SET price_adjustment = ? WHERE id = ?`), "20.00", v)
	require.NoError(t, err)

	after, err := f.uc.GetOrder(ctx, res.OrderNumber)
	require.NoError(t, err)
	require.Len(t, after.Items, 1)
	assert.True(t, decimal.RequireFromString("45").Equal(after.Items[0].UnitPrice), after.Items[0].UnitPrice.String())
	assert.True(t, decimal.RequireFromString("90").Equal(after.Items[0].TotalPrice), after.Items[0].TotalPrice.String())
	assert.True(t, before.Subtotal.Equal(after.Subtotal))
	assert.True(t, before.TaxAmount.Equal(after.TaxAmount))
	assert.True(t, before.TotalAmount.Equal(after.TotalAmount))
	assert.True(t, res.TotalAmount.Equal(after.TotalAmount))
}

func TestPlaceOrderWithoutRegionOrShipping(t *testing.T) {
	f := newFixture(t)
	v := f.variant(t, "cap", "25.00", "0", 5)

	input := orderInput(dto.OrderItemInput{VariantID: v, Quantity: 2})
	input.ShippingAddress.CountryCode = "NZ"
	missing := int64(9999)
	input.ShippingMethodID = &missing

	res, err := f.uc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(res.TotalAmount))
}

func TestPlaceOrderRejectsZeroStock(t *testing.T) {
	f := newFixture(t)
	v := f.variant(t, "sold-out", "30.00", "0", 0)

	_, err := f.uc.PlaceOrder(context.Background(), orderInput(dto.OrderItemInput{VariantID: v, Quantity: 1}))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "variant")

	assert.Zero(t, testutil.Count(t, f.db, "orders", ""))
	assert.Zero(t, testutil.Count(t, f.db, "order_items", ""))
	assert.Zero(t, testutil.Stock(t, f.db, v))
	assert.Empty(t, f.events.Snapshot())
}

func TestPlaceOrderUnknownOrInactiveVariant(t *testing.T) {
	f := newFixture(t)
	productID := testutil.SeedProduct(t, f.db, testutil.Product{Slug: "retired"})
	inactive := testutil.SeedVariant(t, f.db, testutil.Variant{ProductID: productID, SKU: "retired-m", Stock: 10, Inactive: true})

	for _, id := range []int64{inactive, 424242} {
		_, err := f.uc.PlaceOrder(context.Background(), orderInput(dto.OrderItemInput{VariantID: id, Quantity: 1}))
		assert.ErrorIs(t, err, apperror.ErrInsufficientStock)
	}
	assert.Zero(t, testutil.Count(t, f.db, "orders", ""))
}

func TestPlaceOrderRollsBackWhenLaterLineFails(t *testing.T) {
	f := newFixture(t)
	plenty := f.variant(t, "plenty", "20.00", "0", 5)
	last := f.variant(t, "last-one", "20.00", "0", 1)

	// Both lines for last-one pass the up-front check; the second decrement
	// is refused after the order row and the first items were written.
	_, err := f.uc.PlaceOrder(context.Background(), orderInput(
		dto.OrderItemInput{VariantID: plenty, Quantity: 2},
		dto.OrderItemInput{VariantID: last, Quantity: 1},
		dto.OrderItemInput{VariantID: last, Quantity: 1},
	))
	require.ErrorIs(t, err, apperror.ErrInsufficientStock)

	assert.Zero(t, testutil.Count(t, f.db, "orders", ""))
	assert.Zero(t, testutil.Count(t, f.db, "order_items", ""))
	assert.Zero(t, testutil.Count(t, f.db, "inventory_movements", ""))
	assert.Equal(t, 5, testutil.Stock(t, f.db, plenty))
	assert.Equal(t, 1, testutil.Stock(t, f.db, last))
}

func TestConcurrentOrdersNeverOversell(t *testing.T) {
	for _, tc := range []struct {
		name    string
		stock   int
		buyers  int
		wantWin int
	}{
		{name: "last unit", stock: 1, buyers: 2, wantWin: 1},
		{name: "small batch", stock: 3, buyers: 8, wantWin: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			v := f.variant(t, "limited", "99.00", "0", tc.stock)

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				wins    int
				refused int
				other   []error
			)
			start := make(chan struct{})
			for i := 0; i < tc.buyers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					_, err := f.uc.PlaceOrder(context.Background(), orderInput(dto.OrderItemInput{VariantID: v, Quantity: 1}))
					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						wins++
					case errors.Is(err, apperror.ErrInsufficientStock):
						refused++
					default:
						other = append(other, err)
					}
				}()
			}
			close(start)
			wg.Wait()

			require.Empty(t, other)
			assert.Equal(t, tc.wantWin, wins)
			assert.Equal(t, tc.buyers-tc.wantWin, refused)
			assert.Equal(t, 0, testutil.Stock(t, f.db, v))
			assert.Equal(t, tc.wantWin, testutil.Count(t, f.db, "orders", ""))
		})
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newFixture(t)
	v := f.variant(t, "tee", "10.00", "0", 5)
	eur := testutil.SeedProduct(t, f.db, testutil.Product{Slug: "euro-tee", Currency: "EUR"})
	eurVariant := testutil.SeedVariant(t, f.db, testutil.Variant{ProductID: eur, SKU: "euro-tee-m", Stock: 5})

	tests := []struct {
		name   string
		mutate func(in *dto.PlaceOrderInput)
		want   string
	}{
		{"no email", func(in *dto.PlaceOrderInput) { in.CustomerEmail = "" }, "Missing required fields"},
		{"no items", func(in *dto.PlaceOrderInput) { in.Items = nil }, "Missing required fields"},
		{"no address", func(in *dto.PlaceOrderInput) { in.ShippingAddress = nil }, "Missing required fields"},
		{"zero quantity", func(in *dto.PlaceOrderInput) { in.Items[0].Quantity = 0 }, "quantity must be greater than 0"},
		{"no country", func(in *dto.PlaceOrderInput) { in.ShippingAddress.CountryCode = "" }, "country_code"},
		{"mixed currencies", func(in *dto.PlaceOrderInput) {
			in.Items = append(in.Items, dto.OrderItemInput{VariantID: eurVariant, Quantity: 1})
		}, "mixes"},
		{"currency mismatch", func(in *dto.PlaceOrderInput) { in.Currency = "GBP" }, "charged in USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := orderInput(dto.OrderItemInput{VariantID: v, Quantity: 1})
			tt.mutate(in)
			_, err := f.uc.PlaceOrder(context.Background(), in)
			require.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
	assert.Zero(t, testutil.Count(t, f.db, "orders", ""))
	assert.Equal(t, 5, testutil.Stock(t, f.db, v))
}

func TestGetOrderNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.GetOrder(context.Background(), "ORD-MISSING")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.variant(t, "tee", "10.00", "0", 5)
	res, err := f.uc.PlaceOrder(ctx, orderInput(dto.OrderItemInput{VariantID: v, Quantity: 1}))
	require.NoError(t, err)

	o, err := f.uc.UpdateStatus(ctx, res.OrderNumber, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, o.Status)

	_, err = f.uc.UpdateStatus(ctx, res.OrderNumber, "lost")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = f.uc.UpdateStatus(ctx, "ORD-MISSING", model.OrderStatusDelivered)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	recent, err := f.uc.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, res.OrderNumber, recent[0].OrderNumber)
}
