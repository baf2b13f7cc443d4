package analytics

import "strings"

var countryRegions = map[string]string{
	"US": "US",
	"CA": "CA",
	"GB": "UK",
	"AU": "AU",
	"JP": "JP",
	"FR": "EU",
	"DE": "EU",
	"IT": "EU",
	"ES": "EU",
	"NL": "EU",
	"BE": "EU",
	"AT": "EU",
	"SE": "EU",
	"DK": "EU",
	"PL": "EU",
}

// RegionForCountry maps a CF-IPCountry value to a storefront region code.
// No country means US; an unmapped country means ROW.
func RegionForCountry(country string) string {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country == "" {
		return "US"
	}
	if region, ok := countryRegions[country]; ok {
		return region
	}
	return "ROW"
}
