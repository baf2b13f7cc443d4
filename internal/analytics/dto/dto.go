package dto

import "encoding/json"

type TrackInput struct {
	EventType string          `json:"event_type" validate:"required"`
	ProductID *int64          `json:"product_id"`
	VariantID *int64          `json:"variant_id"`
	DropID    *int64          `json:"drop_id"`
	Data      json.RawMessage `json:"data"`

	// Filled from request headers.
	Country   string `json:"-"`
	SessionID string `json:"-"`
}
