package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                  int64           `db:"id" json:"id"`
	OrderNumber         string          `db:"order_number" json:"order_number"`
	CustomerEmail       string          `db:"customer_email" json:"customer_email"`
	Status              string          `db:"status" json:"status"`
	Subtotal            decimal.Decimal `db:"subtotal" json:"subtotal"`
	ShippingCost        decimal.Decimal `db:"shipping_cost" json:"shipping_cost"`
	TaxAmount           decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalAmount         decimal.Decimal `db:"total_amount" json:"total_amount"`
	Currency            string          `db:"currency" json:"currency"`
	PaymentStatus       string          `db:"payment_status" json:"payment_status"`
	PaymentIntentID     *string         `db:"payment_intent_id" json:"payment_intent_id"`
	ShippingMethodID    *int64          `db:"shipping_method_id" json:"shipping_method_id"`
	ShippingAddressJSON string          `db:"shipping_address_json" json:"-"`
	BillingAddressJSON  *string         `db:"billing_address_json" json:"-"`
	TrackingNumber      *string         `db:"tracking_number" json:"tracking_number"`
	TrackingURL         *string         `db:"tracking_url" json:"tracking_url"`
	Notes               *string         `db:"notes" json:"notes"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderItem prices are snapshots taken when the order was placed.
type OrderItem struct {
	ID         int64           `db:"id" json:"id"`
	OrderID    int64           `db:"order_id" json:"order_id"`
	ProductID  int64           `db:"product_id" json:"product_id"`
	VariantID  int64           `db:"variant_id" json:"variant_id"`
	Quantity   int             `db:"quantity" json:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice decimal.Decimal `db:"total_price" json:"total_price"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// OrderItemDetail joins an item with the product and variant labels used
// on the tracking page.
type OrderItemDetail struct {
	OrderItem
	ProductName string  `db:"product_name" json:"product_name"`
	ProductSlug string  `db:"product_slug" json:"product_slug"`
	Size        *string `db:"size" json:"size"`
	Color       *string `db:"color" json:"color"`
	SKU         string  `db:"sku" json:"sku"`
}

type Address struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	AddressLine1  string `json:"address_line1" validate:"required"`
	AddressLine2  string `json:"address_line2,omitempty"`
	City          string `json:"city" validate:"required"`
	StateProvince string `json:"state_province"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code" validate:"required"`
}
