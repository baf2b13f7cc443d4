package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/inventory/dto"
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

func (r *PGRepository) ApplyStockChange(ctx context.Context, variantID int64, change int) (int, int, bool, error) {
	// The WHERE guard is the stock check; no earlier read is trusted.
	required := 0
	if change < 0 {
		required = -change
	}
	query := r.DB.Rebind(`
		UPDATE product_variants
		SET stock_quantity = stock_quantity + ?, updated_at = ?
		WHERE id = ? AND stock_quantity >= ?
		RETURNING stock_quantity
	`)

	var after int
	err := database.Conn(ctx, r.DB).QueryRowxContext(ctx, query, change, time.Now().UTC(), variantID, required).Scan(&after)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, false, nil
		}
		return 0, 0, false, err
	}
	return after - change, after, true, nil
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.InventoryMovement) error {
	query := r.DB.Rebind(`
        INSERT INTO inventory_movements (
            variant_id, movement_type, quantity_change, quantity_before, quantity_after,
            reference_type, reference_id, notes, created_by, created_at
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return database.Conn(ctx, r.DB).QueryRowxContext(ctx, query,
		m.VariantID, m.MovementType, m.QuantityChange, m.QuantityBefore, m.QuantityAfter,
		m.ReferenceType, m.ReferenceID, m.Notes, m.CreatedBy, m.CreatedAt,
	).Scan(&m.ID)
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	items := []model.InventoryMovement{}
	var count int

	conditions := []string{}
	args := []interface{}{}

	if f.VariantID != nil {
		conditions = append(conditions, "variant_id = ?")
		args = append(args, *f.VariantID)
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = ?")
		args = append(args, f.MovementType)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	db := database.Conn(ctx, r.DB)
	countQuery := r.DB.Rebind("SELECT count(*) FROM inventory_movements" + whereClause)
	if err := db.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM inventory_movements" + whereClause + " ORDER BY created_at DESC, id DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	err := db.SelectContext(ctx, &items, r.DB.Rebind(query), args...)
	return items, count, err
}

func (r *PGRepository) FindLowStock(ctx context.Context) ([]model.LowStockVariant, error) {
	query := `
		SELECT pv.id AS variant_id, pv.product_id, p.name AS product_name,
			pv.sku, pv.size, pv.color, pv.stock_quantity, pv.low_stock_threshold
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		WHERE pv.is_active = TRUE AND pv.stock_quantity <= pv.low_stock_threshold
		ORDER BY pv.stock_quantity, pv.id
	`
	items := []model.LowStockVariant{}
	if err := database.Conn(ctx, r.DB).SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}
