package subscription

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/subscription/dto"
)

type UseCase interface {
	Subscribe(ctx context.Context, input *dto.SubscribeInput) (*dto.Result, error)
	NotifyDrop(ctx context.Context, dropID int64, input *dto.DropNotifyInput) (*dto.Result, error)
	NotifyStock(ctx context.Context, input *dto.StockNotifyInput) (*dto.Result, error)

	ListSubscribers(ctx context.Context) ([]model.Subscriber, error)
}
