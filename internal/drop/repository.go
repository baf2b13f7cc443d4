package drop

import (
	"context"

	"github.com/fekuna/omnipos-storefront/internal/model"
)

type Repository interface {
	// FindByStatus orders by launch date, newest first.
	FindByStatus(ctx context.Context, status string) ([]model.Drop, error)
	FindBySlug(ctx context.Context, slug string) (*model.Drop, error)
	FindByID(ctx context.Context, id int64) (*model.Drop, error)
	FindAllWithProductCounts(ctx context.Context) ([]model.DropSummary, error)
}
