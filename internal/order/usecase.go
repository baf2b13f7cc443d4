package order

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
)

type UseCase interface {
	PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (*dto.PlaceOrderResult, error)
	GetOrder(ctx context.Context, orderNumber string) (*dto.OrderDetail, error)

	// Admin
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderNumber, status string) (*model.Order, error)
}
