package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type UseCase interface {
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.ProductListing, error)
	GetProductDetail(ctx context.Context, input *dto.DetailInput) (*dto.ProductDetail, error)

	// Admin
	ListForAdmin(ctx context.Context) ([]model.ProductSummary, error)
	Reindex(ctx context.Context) (int, error)
}
