package testutil

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
)

type Drop struct {
	Name       string
	Slug       string
	Status     string
	LaunchDate *time.Time
	IsFeatured bool
}

func SeedDrop(t testing.TB, db *sqlx.DB, d Drop) int64 {
	t.Helper()
	if d.Name == "" {
		d.Name = d.Slug
	}
	if d.Status == "" {
		d.Status = "current"
	}
	return insert(t, db,
		`INSERT INTO drops (name, slug, status, launch_date, is_featured) VALUES (?, ?, ?, ?, ?)`,
		d.Name, d.Slug, d.Status, d.LaunchDate, d.IsFeatured)
}

type Product struct {
	DropID      *int64
	Name        string
	Slug        string
	Description string
	Category    string
	BasePrice   string
	Currency    string
	Inactive    bool
}

func SeedProduct(t testing.TB, db *sqlx.DB, p Product) int64 {
	t.Helper()
	if p.Name == "" {
		p.Name = p.Slug
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.BasePrice == "" {
		p.BasePrice = "50.00"
	}
	var category interface{}
	if p.Category != "" {
		category = p.Category
	}
	return insert(t, db,
		`INSERT INTO products (drop_id, name, slug, description, category, base_price, currency, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.DropID, p.Name, p.Slug, p.Description, category, p.BasePrice, p.Currency, !p.Inactive)
}

type Variant struct {
	ProductID       int64
	SKU             string
	Size            string
	Color           string
	PriceAdjustment string
	Stock           int
	Threshold       int
	Inactive        bool
}

func SeedVariant(t testing.TB, db *sqlx.DB, v Variant) int64 {
	t.Helper()
	if v.PriceAdjustment == "" {
		v.PriceAdjustment = "0"
	}
	if v.Threshold == 0 {
		v.Threshold = 5
	}
	var size, color interface{}
	if v.Size != "" {
		size = v.Size
	}
	if v.Color != "" {
		color = v.Color
	}
	return insert(t, db,
		`INSERT INTO product_variants (product_id, sku, size, color, price_adjustment, stock_quantity, low_stock_threshold, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ProductID, v.SKU, size, color, v.PriceAdjustment, v.Stock, v.Threshold, !v.Inactive)
}

func SeedImage(t testing.TB, db *sqlx.DB, productID int64, url string, primary bool, order int) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO product_images (product_id, image_url, is_primary, display_order) VALUES (?, ?, ?, ?)`,
		productID, url, primary, order)
}

func SeedVideo(t testing.TB, db *sqlx.DB, productID int64, url string, order int) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO product_videos (product_id, video_url, display_order) VALUES (?, ?, ?)`,
		productID, url, order)
}

func SeedRegion(t testing.TB, db *sqlx.DB, code, currency, taxRate string) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO regions (code, name, currency, tax_rate) VALUES (?, ?, ?, ?)`,
		code, code, currency, taxRate)
}

func SeedShippingMethod(t testing.TB, db *sqlx.DB, regionID int64, name, cost string) int64 {
	t.Helper()
	return insert(t, db,
		`INSERT INTO shipping_methods (region_id, name, base_cost, estimated_days_min, estimated_days_max) VALUES (?, ?, ?, ?, ?)`,
		regionID, name, cost, 3, 7)
}
