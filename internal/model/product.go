package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StockStatusSoldOut = "sold_out"
	StockStatusLow     = "low_stock"
	StockStatusInStock = "in_stock"
)

type Product struct {
	ID               int64           `db:"id" json:"id"`
	DropID           *int64          `db:"drop_id" json:"drop_id"` // Nullable
	Name             string          `db:"name" json:"name"`
	Slug             string          `db:"slug" json:"slug"`
	Description      *string         `db:"description" json:"description"`
	Category         *string         `db:"category" json:"category"`
	BasePrice        decimal.Decimal `db:"base_price" json:"base_price"`
	Currency         string          `db:"currency" json:"currency"`
	SizeGuide        *string         `db:"size_guide" json:"size_guide"`
	ModelInfo        *string         `db:"model_info" json:"model_info"`
	CareInstructions *string         `db:"care_instructions" json:"care_instructions"`
	Material         *string         `db:"material" json:"material"`
	IsActive         bool            `db:"is_active" json:"is_active"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// ProductListing carries the derived columns shown on listing pages.
type ProductListing struct {
	Product
	PrimaryImage *string             `db:"primary_image" json:"primary_image"`
	MinPrice     decimal.NullDecimal `db:"min_price" json:"min_price"`
	TotalStock   *int64              `db:"total_stock" json:"total_stock"`
}

// ProductSummary is the admin view of a product.
type ProductSummary struct {
	Product
	TotalStock   *int64  `db:"total_stock" json:"total_stock"`
	VariantCount int64   `db:"variant_count" json:"variant_count"`
	DropName     *string `db:"drop_name" json:"drop_name"`
}

type ProductImage struct {
	ID           int64     `db:"id" json:"id"`
	ProductID    int64     `db:"product_id" json:"product_id"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	AltText      *string   `db:"alt_text" json:"alt_text"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsPrimary    bool      `db:"is_primary" json:"is_primary"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type ProductVideo struct {
	ID           int64     `db:"id" json:"id"`
	ProductID    int64     `db:"product_id" json:"product_id"`
	VideoURL     string    `db:"video_url" json:"video_url"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type ProductVariant struct {
	ID                int64           `db:"id" json:"id"`
	ProductID         int64           `db:"product_id" json:"product_id"`
	SKU               string          `db:"sku" json:"sku"`
	Size              *string         `db:"size" json:"size"`
	Color             *string         `db:"color" json:"color"`
	ColorHex          *string         `db:"color_hex" json:"color_hex"`
	PriceAdjustment   decimal.Decimal `db:"price_adjustment" json:"price_adjustment"`
	StockQuantity     int             `db:"stock_quantity" json:"stock_quantity"`
	LowStockThreshold int             `db:"low_stock_threshold" json:"low_stock_threshold"`
	WeightGrams       *int            `db:"weight_grams" json:"weight_grams"`
	IsActive          bool            `db:"is_active" json:"is_active"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// StockStatus classifies the variant's stock for display. The threshold
// is informational; nothing reorders automatically.
func (v *ProductVariant) StockStatus() string {
	switch {
	case v.StockQuantity <= 0:
		return StockStatusSoldOut
	case v.StockQuantity <= v.LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusInStock
	}
}
