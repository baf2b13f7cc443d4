package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindLineVariant(ctx context.Context, variantID int64) (*dto.LineVariant, error) {
	query := r.DB.Rebind(`
		SELECT pv.id AS variant_id, pv.product_id, pv.sku, pv.stock_quantity,
			pv.is_active AS variant_active, p.is_active AS product_active,
			p.base_price, pv.price_adjustment, p.currency
		FROM product_variants pv
		JOIN products p ON p.id = pv.product_id
		WHERE pv.id = ?
	`)
	var v dto.LineVariant
	err := database.Conn(ctx, r.DB).GetContext(ctx, &v, query, variantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PGRepository) Create(ctx context.Context, o *model.Order) error {
	query := r.DB.Rebind(`
        INSERT INTO orders (
            order_number, customer_email, status, subtotal, shipping_cost,
            tax_amount, total_amount, currency, payment_status, shipping_method_id,
            shipping_address_json, billing_address_json, created_at, updated_at
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `)
	return database.Conn(ctx, r.DB).QueryRowxContext(ctx, query,
		o.OrderNumber, o.CustomerEmail, o.Status, o.Subtotal, o.ShippingCost,
		o.TaxAmount, o.TotalAmount, o.Currency, o.PaymentStatus, o.ShippingMethodID,
		o.ShippingAddressJSON, o.BillingAddressJSON, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
}

func (r *PGRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	query := r.DB.Rebind(`
        INSERT INTO order_items (order_id, product_id, variant_id, quantity, unit_price, total_price, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `)
	return database.Conn(ctx, r.DB).QueryRowxContext(ctx, query,
		item.OrderID, item.ProductID, item.VariantID, item.Quantity,
		item.UnitPrice, item.TotalPrice, item.CreatedAt,
	).Scan(&item.ID)
}

func (r *PGRepository) FindByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var o model.Order
	query := r.DB.Rebind(`SELECT * FROM orders WHERE order_number = ? LIMIT 1`)
	err := database.Conn(ctx, r.DB).GetContext(ctx, &o, query, orderNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindItems(ctx context.Context, orderID int64) ([]model.OrderItemDetail, error) {
	query := r.DB.Rebind(`
		SELECT oi.*, p.name AS product_name, p.slug AS product_slug,
			pv.size, pv.color, pv.sku
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		JOIN product_variants pv ON oi.variant_id = pv.id
		WHERE oi.order_id = ?
		ORDER BY oi.id
	`)
	items := []model.OrderItemDetail{}
	if err := database.Conn(ctx, r.DB).SelectContext(ctx, &items, query, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindRecent(ctx context.Context, limit int) ([]model.Order, error) {
	orders := []model.Order{}
	query := r.DB.Rebind(`SELECT * FROM orders ORDER BY created_at DESC, id DESC LIMIT ?`)
	if err := database.Conn(ctx, r.DB).SelectContext(ctx, &orders, query, limit); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, orderNumber, status string, now time.Time) (bool, error) {
	query := r.DB.Rebind(`UPDATE orders SET status = ?, updated_at = ? WHERE order_number = ?`)
	res, err := database.Conn(ctx, r.DB).ExecContext(ctx, query, status, now, orderNumber)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := database.Conn(ctx, r.DB).GetContext(ctx, &count, `SELECT COUNT(*) FROM orders`)
	return count, err
}

func (r *PGRepository) SumRevenue(ctx context.Context, paymentStatus string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := r.DB.Rebind(`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = ?`)
	err := database.Conn(ctx, r.DB).GetContext(ctx, &total, query, paymentStatus)
	return total, err
}
