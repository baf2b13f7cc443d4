package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantStockStatus(t *testing.T) {
	tests := []struct {
		stock, threshold int
		want             string
	}{
		{0, 5, StockStatusSoldOut},
		{3, 5, StockStatusLow},
		{5, 5, StockStatusLow},
		{6, 5, StockStatusInStock},
	}
	for _, tt := range tests {
		v := ProductVariant{StockQuantity: tt.stock, LowStockThreshold: tt.threshold}
		assert.Equal(t, tt.want, v.StockStatus(), "stock=%d threshold=%d", tt.stock, tt.threshold)
	}
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(struct {
		Price decimal.Decimal `json:"price"`
	}{Price: decimal.RequireFromString("49.90")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 49.9}`, string(data))
}

func TestValidDropStatus(t *testing.T) {
	assert.True(t, ValidDropStatus("current"))
	assert.True(t, ValidDropStatus("coming_soon"))
	assert.False(t, ValidDropStatus("archived"))
}
