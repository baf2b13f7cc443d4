package order

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// FindLineVariant loads the variant with its product's price fields.
	FindLineVariant(ctx context.Context, variantID int64) (*dto.LineVariant, error)
	Create(ctx context.Context, order *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error

	FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	FindItems(ctx context.Context, orderID int64) ([]model.OrderItemDetail, error)
	FindRecent(ctx context.Context, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderNumber, status string, now time.Time) (bool, error)

	Count(ctx context.Context) (int, error)
	SumRevenue(ctx context.Context, paymentStatus string) (decimal.Decimal, error)
}
