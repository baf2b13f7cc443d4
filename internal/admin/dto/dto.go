package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Stats struct {
	Products    int             `json:"products"`
	Orders      int             `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
	Subscribers int             `json:"subscribers"`
}
