package region

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/region/dto"
)

type UseCase interface {
	ListRegions(ctx context.Context) ([]model.Region, error)
	GetShipping(ctx context.Context, code string) (*dto.RegionShipping, error)
}
