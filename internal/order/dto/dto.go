package dto

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/shopspring/decimal"
)

// LineVariant is the pricing and stock view of one cart line.
type LineVariant struct {
	VariantID       int64           `db:"variant_id"`
	ProductID       int64           `db:"product_id"`
	SKU             string          `db:"sku"`
	StockQuantity   int             `db:"stock_quantity"`
	VariantActive   bool            `db:"variant_active"`
	ProductActive   bool            `db:"product_active"`
	BasePrice       decimal.Decimal `db:"base_price"`
	PriceAdjustment decimal.Decimal `db:"price_adjustment"`
	Currency        string          `db:"currency"`
}

func (v *LineVariant) UnitPrice() decimal.Decimal {
	return v.BasePrice.Add(v.PriceAdjustment)
}

type PlaceOrderResult struct {
	Success     bool            `json:"success"`
	OrderNumber string          `json:"order_number"`
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Currency    string          `json:"currency"`
}

type OrderDetail struct {
	model.Order
	ShippingAddress *model.Address          `json:"shipping_address"`
	BillingAddress  *model.Address          `json:"billing_address"`
	Items           []model.OrderItemDetail `json:"items"`
}

// OrderPlaced is published after the order transaction commits.
type OrderPlaced struct {
	OrderID       int64             `json:"order_id"`
	OrderNumber   string            `json:"order_number"`
	CustomerEmail string            `json:"customer_email"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	ShippingCost  decimal.Decimal   `json:"shipping_cost"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Currency      string            `json:"currency"`
	Items         []OrderPlacedItem `json:"items"`
}

type OrderPlacedItem struct {
	VariantID int64           `json:"variant_id"`
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
