package analytics

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	Create(ctx context.Context, event *model.AnalyticsEvent) error
}
