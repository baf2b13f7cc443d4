package model

import "time"

const (
	MovementTypeSale       = "sale"
	MovementTypeAdjustment = "adjustment"
)

// LowStockVariant is a variant at or below its low-stock threshold.
type LowStockVariant struct {
	VariantID         int64   `db:"variant_id" json:"variant_id"`
	ProductID         int64   `db:"product_id" json:"product_id"`
	ProductName       string  `db:"product_name" json:"product_name"`
	SKU               string  `db:"sku" json:"sku"`
	Size              *string `db:"size" json:"size"`
	Color             *string `db:"color" json:"color"`
	StockQuantity     int     `db:"stock_quantity" json:"stock_quantity"`
	LowStockThreshold int     `db:"low_stock_threshold" json:"low_stock_threshold"`
}

type InventoryMovement struct {
	ID             int64     `db:"id" json:"id"`
	VariantID      int64     `db:"variant_id" json:"variant_id"`
	MovementType   string    `db:"movement_type" json:"movement_type"`
	QuantityChange int       `db:"quantity_change" json:"quantity_change"`
	QuantityBefore int       `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  int       `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string   `db:"reference_type" json:"reference_type"`
	ReferenceID    *string   `db:"reference_id" json:"reference_id"`
	Notes          string    `db:"notes" json:"notes"`
	CreatedBy      *string   `db:"created_by" json:"created_by"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
