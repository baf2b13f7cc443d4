package inventory

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	// ApplyStockChange adds change to the variant's stock in one conditional
	// update that never takes it below zero. ok is false when the variant is
	// missing or the guard refused the change.
	ApplyStockChange(ctx context.Context, variantID int64, change int) (before, after int, ok bool, err error)

	// Movements / Audit
	LogMovement(ctx context.Context, movement *model.InventoryMovement) error
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)

	FindLowStock(ctx context.Context) ([]model.LowStockVariant, error)
}
