package currency

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Rates maps a currency code to its value per one unit of the reference
// currency (USD = 1).
type Rates map[string]decimal.Decimal

func DefaultRates() Rates {
	return Rates{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString("0.92"),
		"GBP": decimal.RequireFromString("0.79"),
		"CAD": decimal.RequireFromString("1.36"),
		"AUD": decimal.RequireFromString("1.52"),
		"JPY": decimal.RequireFromString("149.50"),
	}
}

type ratesFile struct {
	Rates map[string]string `yaml:"rates"`
}

// LoadRatesFile reads a YAML document of the form
//
//	rates:
//	  USD: "1.0"
//	  EUR: "0.92"
func LoadRatesFile(path string) (Rates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}

	var f ratesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rates file: %w", err)
	}
	if len(f.Rates) == 0 {
		return nil, errors.New("rates file has no rates")
	}

	rates := make(Rates, len(f.Rates))
	for code, raw := range f.Rates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", code, err)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %s must be positive", code)
		}
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}

type Converter struct {
	rates Rates
}

func NewConverter(rates Rates) *Converter {
	copied := make(Rates, len(rates))
	for code, rate := range rates {
		copied[strings.ToUpper(code)] = rate
	}
	return &Converter{rates: copied}
}

func (c *Converter) Supports(code string) bool {
	_, ok := c.rates[strings.ToUpper(code)]
	return ok
}

// Convert returns amount / rate[from] * rate[to], rounded to two places.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	fromRate, ok := c.rates[strings.ToUpper(from)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}
	toRate, ok := c.rates[strings.ToUpper(to)]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}

	if strings.EqualFold(from, to) {
		return amount.Round(2), nil
	}

	return amount.DivRound(fromRate, 16).Mul(toRate).Round(2), nil
}
