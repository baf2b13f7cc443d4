package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindActive(ctx context.Context) ([]model.Region, error) {
	regions := []model.Region{}
	err := database.Conn(ctx, r.DB).SelectContext(ctx, &regions,
		`SELECT * FROM regions WHERE is_active = TRUE ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *PGRepository) FindByCode(ctx context.Context, code string) (*model.Region, error) {
	var region model.Region
	query := r.DB.Rebind(`SELECT * FROM regions WHERE code = ? AND is_active = TRUE LIMIT 1`)
	err := database.Conn(ctx, r.DB).GetContext(ctx, &region, query, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &region, nil
}

func (r *PGRepository) FindShippingMethods(ctx context.Context, regionID int64) ([]model.ShippingMethod, error) {
	methods := []model.ShippingMethod{}
	query := r.DB.Rebind(`
		SELECT * FROM shipping_methods
		WHERE region_id = ? AND is_active = TRUE
		ORDER BY base_cost, id
	`)
	if err := database.Conn(ctx, r.DB).SelectContext(ctx, &methods, query, regionID); err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *PGRepository) FindShippingMethodByID(ctx context.Context, id int64) (*model.ShippingMethod, error) {
	var method model.ShippingMethod
	query := r.DB.Rebind(`SELECT * FROM shipping_methods WHERE id = ? AND is_active = TRUE LIMIT 1`)
	err := database.Conn(ctx, r.DB).GetContext(ctx, &method, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}
