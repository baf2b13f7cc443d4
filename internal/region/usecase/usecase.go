package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/region"
	"github.com/fekuna/omnipos-storefront/internal/region/dto"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
)

type regionUseCase struct {
	repo region.Repository
}

func NewRegionUseCase(repo region.Repository) region.UseCase {
	return &regionUseCase{repo: repo}
}

func (uc *regionUseCase) ListRegions(ctx context.Context) ([]model.Region, error) {
	return uc.repo.FindActive(ctx)
}

func (uc *regionUseCase) GetShipping(ctx context.Context, code string) (*dto.RegionShipping, error) {
	r, err := uc.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find region: %w", err)
	}
	if r == nil {
		return nil, apperror.NotFound("Region not found")
	}

	methods, err := uc.repo.FindShippingMethods(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("find shipping methods: %w", err)
	}

	return &dto.RegionShipping{Region: *r, Methods: methods}, nil
}
