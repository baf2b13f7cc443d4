package model

import "time"

type AnalyticsEvent struct {
	ID         int64     `db:"id" json:"id"`
	EventType  string    `db:"event_type" json:"event_type"`
	ProductID  *int64    `db:"product_id" json:"product_id"`
	VariantID  *int64    `db:"variant_id" json:"variant_id"`
	DropID     *int64    `db:"drop_id" json:"drop_id"`
	RegionCode string    `db:"region_code" json:"region_code"`
	SessionID  string    `db:"session_id" json:"session_id"`
	DataJSON   string    `db:"data_json" json:"data_json"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
