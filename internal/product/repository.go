package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
)

type Repository interface {
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.ProductListing, error)
	FindListingsByIDs(ctx context.Context, ids []int64) ([]model.ProductListing, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	FindAllActive(ctx context.Context) ([]model.Product, error)
	FindAllForAdmin(ctx context.Context) ([]model.ProductSummary, error)
	Count(ctx context.Context) (int, error)

	FindImages(ctx context.Context, productID int64) ([]model.ProductImage, error)
	FindVideos(ctx context.Context, productID int64) ([]model.ProductVideo, error)
	// FindVariants returns active variants in size order.
	FindVariants(ctx context.Context, productID int64) ([]model.ProductVariant, error)
}
