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

// insertOnce runs an insert guarded by a unique constraint. A duplicate is
// not an error.
func (r *PGRepository) insertOnce(ctx context.Context, query string, args ...interface{}) (bool, error) {
	_, err := database.Conn(ctx, r.DB).ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PGRepository) CreateSubscriber(ctx context.Context, s *model.Subscriber) (bool, error) {
	return r.insertOnce(ctx,
		`INSERT INTO email_subscribers (email, name, source, is_active, subscribed_at) VALUES (?, ?, ?, ?, ?)`,
		s.Email, s.Name, s.Source, s.IsActive, s.SubscribedAt)
}

func (r *PGRepository) CreateDropNotification(ctx context.Context, email string, dropID int64) (bool, error) {
	return r.insertOnce(ctx,
		`INSERT INTO drop_notifications (email, drop_id) VALUES (?, ?)`, email, dropID)
}

func (r *PGRepository) CreateStockNotification(ctx context.Context, email string, variantID int64) (bool, error) {
	return r.insertOnce(ctx,
		`INSERT INTO stock_notifications (email, variant_id) VALUES (?, ?)`, email, variantID)
}

func (r *PGRepository) FindActive(ctx context.Context) ([]model.Subscriber, error) {
	subs := []model.Subscriber{}
	err := database.Conn(ctx, r.DB).SelectContext(ctx, &subs,
		`SELECT * FROM email_subscribers WHERE is_active = TRUE ORDER BY subscribed_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := database.Conn(ctx, r.DB).GetContext(ctx, &count, `SELECT COUNT(*) FROM email_subscribers`)
	return count, err
}

func (r *PGRepository) DropExists(ctx context.Context, dropID int64) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.DB).GetContext(ctx, &exists,
		r.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM drops WHERE id = ?)`), dropID)
	return exists, err
}

func (r *PGRepository) VariantExists(ctx context.Context, variantID int64) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.DB).GetContext(ctx, &exists,
		r.DB.Rebind(`SELECT EXISTS(SELECT 1 FROM product_variants WHERE id = ?)`), variantID)
	return exists, err
}
