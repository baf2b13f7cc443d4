package dto

import "github.com/fekuna/omnipos-storefront/internal/model"

type OrderItemInput struct {
	VariantID int64 `json:"variant_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"gt=0"`
}

type PlaceOrderInput struct {
	CustomerEmail    string           `json:"customer_email" validate:"required,email"`
	Items            []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	ShippingAddress  *model.Address   `json:"shipping_address" validate:"required"`
	BillingAddress   *model.Address   `json:"billing_address" validate:"omitempty"`
	ShippingMethodID *int64           `json:"shipping_method_id"`
	// Currency is optional; when set it must match the catalog currency.
	Currency string `json:"currency"`
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}
