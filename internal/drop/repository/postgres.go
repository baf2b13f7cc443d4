package repository

import (
	"context"
	"database/sql"
	"errors"

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

func (r *PGRepository) FindByStatus(ctx context.Context, status string) ([]model.Drop, error) {
	drops := []model.Drop{}
	query := r.DB.Rebind(`SELECT * FROM drops WHERE status = ? ORDER BY launch_date DESC NULLS LAST, id DESC`)
	if err := database.Conn(ctx, r.DB).SelectContext(ctx, &drops, query, status); err != nil {
		return nil, err
	}
	return drops, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Drop, error) {
	return r.findOne(ctx, `SELECT * FROM drops WHERE slug = ? LIMIT 1`, slug)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Drop, error) {
	return r.findOne(ctx, `SELECT * FROM drops WHERE id = ? LIMIT 1`, id)
}

func (r *PGRepository) findOne(ctx context.Context, query string, arg interface{}) (*model.Drop, error) {
	var d model.Drop
	err := database.Conn(ctx, r.DB).GetContext(ctx, &d, r.DB.Rebind(query), arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *PGRepository) FindAllWithProductCounts(ctx context.Context) ([]model.DropSummary, error) {
	query := `
		SELECT d.*,
			(SELECT COUNT(*) FROM products p WHERE p.drop_id = d.id) AS product_count
		FROM drops d
		ORDER BY d.created_at DESC, d.id DESC
	`
	drops := []model.DropSummary{}
	if err := database.Conn(ctx, r.DB).SelectContext(ctx, &drops, query); err != nil {
		return nil, err
	}
	return drops, nil
}
