package currency

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	c := NewConverter(DefaultRates())

	got, err := c.Convert(decimal.NewFromInt(100), "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "92", got.String())

	got, err = c.Convert(decimal.NewFromInt(92), "EUR", "GBP")
	require.NoError(t, err)
	assert.Equal(t, "79", got.String())

	got, err = c.Convert(decimal.RequireFromString("10"), "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, "1495", got.String())
}

func TestConvertRoundTrip(t *testing.T) {
	c := NewConverter(DefaultRates())
	tolerance := decimal.RequireFromString("0.01")

	for _, raw := range []string{"19.99", "49.95", "250", "0.5", "1234.56"} {
		amount := decimal.RequireFromString(raw)

		eur, err := c.Convert(amount, "USD", "EUR")
		require.NoError(t, err)
		back, err := c.Convert(eur, "EUR", "USD")
		require.NoError(t, err)

		diff := back.Sub(amount).Abs()
		assert.True(t, diff.LessThanOrEqual(tolerance), "%s -> %s -> %s", amount, eur, back)
	}
}

func TestConvertUnsupported(t *testing.T) {
	c := NewConverter(DefaultRates())

	_, err := c.Convert(decimal.NewFromInt(1), "USD", "XYZ")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = c.Convert(decimal.NewFromInt(1), "ABC", "USD")
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	assert.True(t, c.Supports("eur"))
	assert.False(t, c.Supports("XYZ"))
}

func TestInjectedRates(t *testing.T) {
	c := NewConverter(Rates{
		"USD": decimal.NewFromInt(1),
		"SEK": decimal.NewFromInt(10),
	})

	got, err := c.Convert(decimal.RequireFromString("12.34"), "USD", "SEK")
	require.NoError(t, err)
	assert.Equal(t, "123.4", got.String())

	assert.False(t, c.Supports("EUR"))
}

func TestLoadRatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rates:\n  usd: \"1\"\n  EUR: \"0.90\"\n"), 0o600))

	rates, err := LoadRatesFile(path)
	require.NoError(t, err)
	assert.True(t, rates["USD"].Equal(decimal.NewFromInt(1)))
	assert.True(t, rates["EUR"].Equal(decimal.RequireFromString("0.9")))

	require.NoError(t, os.WriteFile(path, []byte("rates:\n  EUR: \"-1\"\n"), 0o600))
	_, err = LoadRatesFile(path)
	assert.Error(t, err)
}
