package repository

import (
	"context"

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

func (r *PGRepository) Create(ctx context.Context, e *model.AnalyticsEvent) error {
	query := r.DB.Rebind(`
		INSERT INTO analytics_events
			(event_type, product_id, variant_id, drop_id, region_code, session_id, data_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	return database.Conn(ctx, r.DB).QueryRowxContext(ctx, query,
		e.EventType, e.ProductID, e.VariantID, e.DropID, e.RegionCode, e.SessionID, e.DataJSON, e.CreatedAt,
	).Scan(&e.ID)
}
