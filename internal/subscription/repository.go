package subscription

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

// Repository inserts report created=false when the row already existed.
type Repository interface {
	CreateSubscriber(ctx context.Context, s *model.Subscriber) (created bool, err error)
	CreateDropNotification(ctx context.Context, email string, dropID int64) (created bool, err error)
	CreateStockNotification(ctx context.Context, email string, variantID int64) (created bool, err error)

	FindActive(ctx context.Context) ([]model.Subscriber, error)
	Count(ctx context.Context) (int, error)
	DropExists(ctx context.Context, dropID int64) (bool, error)
	VariantExists(ctx context.Context, variantID int64) (bool, error)
}
