package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/database"
	"github.com/jmoiron/sqlx"
)

// listingColumns adds the derived listing columns to p.*.
const listingColumns = `
	p.*,
	(SELECT pi.image_url FROM product_images pi
	  WHERE pi.product_id = p.id AND pi.is_primary = TRUE
	  ORDER BY pi.display_order, pi.id LIMIT 1) AS primary_image,
	p.base_price + (SELECT MIN(pv.price_adjustment) FROM product_variants pv
	  WHERE pv.product_id = p.id AND pv.is_active = TRUE) AS min_price,
	(SELECT SUM(pv.stock_quantity) FROM product_variants pv
	  WHERE pv.product_id = p.id AND pv.is_active = TRUE) AS total_stock`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.ProductListing, error) {
	conditions := []string{"p.is_active = TRUE"}
	args := []interface{}{}

	if f.Category != "" {
		conditions = append(conditions, "p.category = ?")
		args = append(args, f.Category)
	}
	if f.DropID != nil {
		conditions = append(conditions, "p.drop_id = ?")
		args = append(args, *f.DropID)
	}
	if f.Search != "" {
		conditions = append(conditions, "(LOWER(p.name) LIKE ? OR LOWER(COALESCE(p.description, '')) LIKE ?)")
		pattern := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, pattern, pattern)
	}

	query := "SELECT " + listingColumns + " FROM products p WHERE " +
		strings.Join(conditions, " AND ") + " ORDER BY p.created_at DESC, p.id DESC"

	products := []model.ProductListing{}
	db := database.Conn(ctx, r.DB)
	if err := db.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) FindListingsByIDs(ctx context.Context, ids []int64) ([]model.ProductListing, error) {
	products := []model.ProductListing{}
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In("SELECT "+listingColumns+" FROM products p WHERE p.is_active = TRUE AND p.id IN (?)", ids)
	if err != nil {
		return nil, err
	}

	db := database.Conn(ctx, r.DB)
	if err := db.SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	query := r.DB.Rebind(`SELECT * FROM products WHERE slug = ? AND is_active = TRUE LIMIT 1`)
	err := database.Conn(ctx, r.DB).GetContext(ctx, &product, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAllActive(ctx context.Context) ([]model.Product, error) {
	products := []model.Product{}
	err := database.Conn(ctx, r.DB).SelectContext(ctx, &products,
		`SELECT * FROM products WHERE is_active = TRUE ORDER BY id`)
	return products, err
}

func (r *PGRepository) FindAllForAdmin(ctx context.Context) ([]model.ProductSummary, error) {
	query := `
		SELECT p.*,
			(SELECT SUM(pv.stock_quantity) FROM product_variants pv WHERE pv.product_id = p.id) AS total_stock,
			(SELECT COUNT(*) FROM product_variants pv WHERE pv.product_id = p.id) AS variant_count,
			d.name AS drop_name
		FROM products p
		LEFT JOIN drops d ON d.id = p.drop_id
		ORDER BY p.created_at DESC, p.id DESC
	`
	products := []model.ProductSummary{}
	if err := database.Conn(ctx, r.DB).SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := database.Conn(ctx, r.DB).GetContext(ctx, &count, `SELECT COUNT(*) FROM products`)
	return count, err
}

func (r *PGRepository) FindImages(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	images := []model.ProductImage{}
	query := r.DB.Rebind(`SELECT * FROM product_images WHERE product_id = ? ORDER BY display_order, id`)
	err := database.Conn(ctx, r.DB).SelectContext(ctx, &images, query, productID)
	return images, err
}

func (r *PGRepository) FindVideos(ctx context.Context, productID int64) ([]model.ProductVideo, error) {
	videos := []model.ProductVideo{}
	query := r.DB.Rebind(`SELECT * FROM product_videos WHERE product_id = ? ORDER BY display_order, id`)
	err := database.Conn(ctx, r.DB).SelectContext(ctx, &videos, query, productID)
	return videos, err
}

func (r *PGRepository) FindVariants(ctx context.Context, productID int64) ([]model.ProductVariant, error) {
	query := r.DB.Rebind(`
		SELECT * FROM product_variants
		WHERE product_id = ? AND is_active = TRUE
		ORDER BY CASE size
			WHEN 'XS' THEN 1
			WHEN 'S' THEN 2
			WHEN 'M' THEN 3
			WHEN 'L' THEN 4
			WHEN 'XL' THEN 5
			ELSE 6
		END, id
	`)
	variants := []model.ProductVariant{}
	err := database.Conn(ctx, r.DB).SelectContext(ctx, &variants, query, productID)
	return variants, err
}
