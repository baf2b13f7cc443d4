package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegionForCountry(t *testing.T) {
	tests := map[string]string{
		"":   "US",
		"US": "US",
		"ca": "CA",
		"GB": "UK",
		"AU": "AU",
		"JP": "JP",
		"DE": "EU",
		"PL": "EU",
		"BR": "ROW",
		"NZ": "ROW",
	}
	for country, want := range tests {
		assert.Equal(t, want, RegionForCountry(country), "country %q", country)
	}
}
