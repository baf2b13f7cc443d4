package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/drop"
	"github.com/fekuna/omnipos-storefront/internal/drop/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	productdto "github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

type dropUseCase struct {
	repo     drop.Repository
	products product.Repository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewDropUseCase(repo drop.Repository, products product.Repository, c cache.Cache, cacheTTL time.Duration, log logger.ZapLogger) drop.UseCase {
	if c == nil {
		c = cache.Noop{}
	}
	return &dropUseCase{
		repo:     repo,
		products: products,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *dropUseCase) ListDrops(ctx context.Context, status string) ([]model.Drop, error) {
	if !model.ValidDropStatus(status) {
		return nil, apperror.Invalid("Invalid status")
	}
	return uc.repo.FindByStatus(ctx, status)
}

func (uc *dropUseCase) GetDrop(ctx context.Context, slug string) (*dto.DropDetail, error) {
	cacheKey := product.DropCacheKeyPrefix + slug

	var cached dto.DropDetail
	hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
	if err != nil {
		uc.logger.Warn("drop cache read failed", zap.String("slug", slug), zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	d, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find drop: %w", err)
	}
	if d == nil {
		return nil, apperror.NotFound("Drop not found")
	}

	products, err := uc.products.FindAll(ctx, &productdto.ProductFilters{DropID: &d.ID})
	if err != nil {
		return nil, fmt.Errorf("find drop products: %w", err)
	}

	detail := &dto.DropDetail{Drop: *d, Products: products}
	if err := uc.cache.SetJSON(ctx, cacheKey, detail, uc.cacheTTL); err != nil {
		uc.logger.Warn("drop cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return detail, nil
}

func (uc *dropUseCase) ListForAdmin(ctx context.Context) ([]model.DropSummary, error) {
	return uc.repo.FindAllWithProductCounts(ctx)
}
