package dto

import "github.com/fekuna/omnipos-storefront/internal/model"

type RegionShipping struct {
	Region  model.Region           `json:"region"`
	Methods []model.ShippingMethod `json:"methods"`
}
