package region

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	FindActive(ctx context.Context) ([]model.Region, error)
	// FindByCode matches active regions only.
	FindByCode(ctx context.Context, code string) (*model.Region, error)
	FindShippingMethods(ctx context.Context, regionID int64) ([]model.ShippingMethod, error)
	FindShippingMethodByID(ctx context.Context, id int64) (*model.ShippingMethod, error)
}
