package dto

type AdjustInventoryInput struct {
	VariantID      int64  `json:"variant_id" validate:"required,gt=0"`
	QuantityChange int    `json:"quantity_change" validate:"required"`
	Reason         string `json:"reason"`
	// Operator is filled from the authenticated principal, never the body.
	Operator string `json:"-"`
}
