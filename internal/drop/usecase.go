package drop

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/drop/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type UseCase interface {
	ListDrops(ctx context.Context, status string) ([]model.Drop, error)
	GetDrop(ctx context.Context, slug string) (*dto.DropDetail, error)
	ListForAdmin(ctx context.Context) ([]model.DropSummary, error)
}
