package product

import (
	"context"

	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

const (
	ListCacheKeyPrefix = "products:list:"
	DropCacheKeyPrefix = "drops:slug:"
)

// InvalidateStockCaches drops every cached payload that embeds stock
// figures. Call it after a committed stock change.
func InvalidateStockCaches(ctx context.Context, c cache.Cache, log logger.ZapLogger) {
	for _, pattern := range []string{ListCacheKeyPrefix + "*", DropCacheKeyPrefix + "*"} {
		if err := c.DeletePattern(ctx, pattern); err != nil {
			log.Warn("failed to invalidate cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}
