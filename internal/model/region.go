package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Region struct {
	ID                    int64               `db:"id" json:"id"`
	Code                  string              `db:"code" json:"code"`
	Name                  string              `db:"name" json:"name"`
	Currency              string              `db:"currency" json:"currency"`
	TaxRate               decimal.Decimal     `db:"tax_rate" json:"tax_rate"`
	DutiesIncluded        bool                `db:"duties_included" json:"duties_included"`
	FreeShippingThreshold decimal.NullDecimal `db:"free_shipping_threshold" json:"free_shipping_threshold"`
	IsActive              bool                `db:"is_active" json:"is_active"`
	CreatedAt             time.Time           `db:"created_at" json:"created_at"`
}

type ShippingMethod struct {
	ID               int64           `db:"id" json:"id"`
	RegionID         int64           `db:"region_id" json:"region_id"`
	Name             string          `db:"name" json:"name"`
	Description      *string         `db:"description" json:"description"`
	BaseCost         decimal.Decimal `db:"base_cost" json:"base_cost"`
	EstimatedDaysMin *int            `db:"estimated_days_min" json:"estimated_days_min"`
	EstimatedDaysMax *int            `db:"estimated_days_max" json:"estimated_days_max"`
	IsActive         bool            `db:"is_active" json:"is_active"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
