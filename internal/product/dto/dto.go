package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

// ProductFilters is also the cache key source, so every field is serialised.
type ProductFilters struct {
	Category string `json:"category,omitempty"`
	DropID   *int64 `json:"drop_id,omitempty"`
	Search   string `json:"search,omitempty"`
}

type ProductView struct {
	model.Product
	ConvertedPrice  decimal.Decimal `json:"converted_price"`
	DisplayCurrency string          `json:"display_currency"`
}

type VariantView struct {
	model.ProductVariant
	ConvertedPrice decimal.Decimal `json:"converted_price"`
	StockStatus    string          `json:"stock_status"`
}

type ProductDetail struct {
	Product  ProductView          `json:"product"`
	Images   []model.ProductImage `json:"images"`
	Videos   []model.ProductVideo `json:"videos"`
	Variants []VariantView        `json:"variants"`
	Drop     *model.Drop          `json:"drop"`
}
