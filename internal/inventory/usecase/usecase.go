package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/inventory"
	"github.com/fekuna/omnipos-storefront/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type inventoryUseCase struct {
	repo   inventory.Repository
	tx     *database.TxManager
	cache  cache.Cache
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, tx *database.TxManager, c cache.Cache, log logger.ZapLogger) inventory.UseCase {
	if c == nil {
		c = cache.Noop{}
	}
	return &inventoryUseCase{
		repo:   repo,
		tx:     tx,
		cache:  c,
		logger: log,
	}
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context) ([]model.LowStockVariant, error) {
	return uc.repo.FindLowStock(ctx)
}

// AdjustInventory applies a manual stock correction and records it. The
// change is refused when it would take stock below zero.
func (uc *inventoryUseCase) AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*model.InventoryMovement, error) {
	if input.QuantityChange == 0 {
		return nil, apperror.Invalid("quantity_change must not be zero")
	}

	var movement *model.InventoryMovement
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		before, after, ok, err := uc.repo.ApplyStockChange(ctx, input.VariantID, input.QuantityChange)
		if err != nil {
			return fmt.Errorf("apply stock change: %w", err)
		}
		if !ok {
			return apperror.InsufficientStock(input.VariantID)
		}

		refType := "manual"
		movement = &model.InventoryMovement{
			VariantID:      input.VariantID,
			MovementType:   model.MovementTypeAdjustment,
			QuantityChange: input.QuantityChange,
			QuantityBefore: before,
			QuantityAfter:  after,
			ReferenceType:  &refType,
			Notes:          strings.TrimSpace(input.Reason),
		}
		if input.Operator != "" {
			op := input.Operator
			movement.CreatedBy = &op
		}

		if err := uc.repo.LogMovement(ctx, movement); err != nil {
			return fmt.Errorf("log movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("inventory adjusted",
		zap.Int64("variant_id", input.VariantID),
		zap.Int("change", input.QuantityChange),
		zap.Int("after", movement.QuantityAfter),
		zap.String("operator", input.Operator),
	)
	product.InvalidateStockCaches(ctx, uc.cache, uc.logger)

	return movement, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = defaultPageSize
	}
	if filters.PageSize > maxPageSize {
		filters.PageSize = maxPageSize
	}
	return uc.repo.ListMovements(ctx, filters)
}
