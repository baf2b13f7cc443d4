package dto

import "github.com/fekuna/omnipos-storefront/internal/model"

type DropDetail struct {
	Drop     model.Drop             `json:"drop"`
	Products []model.ProductListing `json:"products"`
}
