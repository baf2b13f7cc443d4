package analytics

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/analytics/dto"
)

type UseCase interface {
	Track(ctx context.Context, input *dto.TrackInput) error
}
