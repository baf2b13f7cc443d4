package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/currency"
	"github.com/fekuna/omnipos-storefront/internal/drop"
	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/cache"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/fekuna/omnipos-storefront/pkg/search"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const searchResultLimit = 100

const indexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"slug": { "type": "keyword" },
			"description": { "type": "text" },
			"category": { "type": "keyword" },
			"drop_id": { "type": "long" },
			"base_price": { "type": "double" },
			"currency": { "type": "keyword" },
			"created_at": { "type": "date" }
		}
	}
}`

type Options struct {
	DefaultCurrency string
	CacheTTL        time.Duration
	SearchIndex     string
}

type productUseCase struct {
	repo      product.Repository
	drops     drop.Repository
	converter *currency.Converter
	cache     cache.Cache
	es        *search.Client
	opts      Options
	logger    logger.ZapLogger
}

// NewProductUseCase wires the catalog reads. es may be nil, in which case
// search goes straight to SQL.
func NewProductUseCase(
	repo product.Repository,
	drops drop.Repository,
	converter *currency.Converter,
	c cache.Cache,
	es *search.Client,
	opts Options,
	log logger.ZapLogger,
) product.UseCase {
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = "USD"
	}
	if opts.SearchIndex == "" {
		opts.SearchIndex = "products"
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &productUseCase{
		repo:      repo,
		drops:     drops,
		converter: converter,
		cache:     c,
		es:        es,
		opts:      opts,
		logger:    log,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.ProductListing, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil {
		var cached []model.ProductListing
		hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}

	var products []model.ProductListing
	if filters.Search != "" && uc.es != nil {
		products, err = uc.searchIndex(ctx, filters)
		if err != nil {
			uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
			products = nil
		}
	}

	if products == nil {
		products, err = uc.repo.FindAll(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, products, uc.opts.CacheTTL); err != nil {
			uc.logger.Warn("product cache write failed", zap.Error(err))
		}
	}

	return products, nil
}

func (uc *productUseCase) searchIndex(ctx context.Context, filters *dto.ProductFilters) ([]model.ProductListing, error) {
	filter := []map[string]interface{}{}
	if filters.Category != "" {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"category": filters.Category}})
	}
	if filters.DropID != nil {
		filter = append(filter, map[string]interface{}{"term": map[string]interface{}{"drop_id": *filters.DropID}})
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": []map[string]interface{}{
					{
						"multi_match": map[string]interface{}{
							"query":  filters.Search,
							"fields": []string{"name^3", "description", "category"},
						},
					},
				},
				"filter": filter,
			},
		},
		"size": searchResultLimit,
	}

	res, err := uc.es.Search(ctx, uc.opts.SearchIndex, q)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			uc.logger.Warn("skipping search hit with non-numeric id", zap.String("id", hit.ID))
			continue
		}
		ids = append(ids, id)
	}

	listings, err := uc.repo.FindListingsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// keep relevance order
	byID := make(map[int64]model.ProductListing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}
	ordered := make([]model.ProductListing, 0, len(listings))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", product.ListCacheKeyPrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) GetProductDetail(ctx context.Context, input *dto.DetailInput) (*dto.ProductDetail, error) {
	target := strings.ToUpper(strings.TrimSpace(input.Currency))
	if target == "" {
		target = uc.opts.DefaultCurrency
	}
	if !uc.converter.Supports(target) {
		return nil, apperror.Invalid("Unsupported currency: %s", target)
	}

	p, err := uc.repo.FindBySlug(ctx, input.Slug)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if p == nil {
		return nil, apperror.NotFound("Product not found")
	}

	images, err := uc.repo.FindImages(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	videos, err := uc.repo.FindVideos(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find videos: %w", err)
	}
	variants, err := uc.repo.FindVariants(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("find variants: %w", err)
	}

	var d *model.Drop
	if p.DropID != nil {
		d, err = uc.drops.FindByID(ctx, *p.DropID)
		if err != nil {
			return nil, fmt.Errorf("find drop: %w", err)
		}
	}

	converted, err := uc.convert(p.BasePrice, p.Currency, target)
	if err != nil {
		return nil, err
	}

	detail := &dto.ProductDetail{
		Product: dto.ProductView{
			Product:         *p,
			ConvertedPrice:  converted,
			DisplayCurrency: target,
		},
		Images:   images,
		Videos:   videos,
		Variants: make([]dto.VariantView, 0, len(variants)),
		Drop:     d,
	}

	for _, v := range variants {
		price, err := uc.convert(p.BasePrice.Add(v.PriceAdjustment), p.Currency, target)
		if err != nil {
			return nil, err
		}
		detail.Variants = append(detail.Variants, dto.VariantView{
			ProductVariant: v,
			ConvertedPrice: price,
			StockStatus:    v.StockStatus(),
		})
	}

	return detail, nil
}

// convert treats a catalog currency missing from the rate table as a
// configuration fault rather than bad input.
func (uc *productUseCase) convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	out, err := uc.converter.Convert(amount, from, to)
	if err != nil {
		return out, fmt.Errorf("convert %s to %s: %w", from, to, err)
	}
	return out, nil
}

func (uc *productUseCase) ListForAdmin(ctx context.Context) ([]model.ProductSummary, error) {
	return uc.repo.FindAllForAdmin(ctx)
}

type searchDocument struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	DropID      *int64          `json:"drop_id"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Currency    string          `json:"currency"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Reindex pushes every active product into the search index and returns
// how many were written.
func (uc *productUseCase) Reindex(ctx context.Context) (int, error) {
	if uc.es == nil {
		return 0, apperror.Invalid("Search is not configured")
	}

	if err := uc.es.CreateIndex(ctx, uc.opts.SearchIndex, indexMapping); err != nil {
		return 0, fmt.Errorf("create index: %w", err)
	}

	products, err := uc.repo.FindAllActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load products: %w", err)
	}

	indexed := 0
	for _, p := range products {
		doc := searchDocument{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			Description: p.Description,
			Category:    p.Category,
			DropID:      p.DropID,
			BasePrice:   p.BasePrice,
			Currency:    p.Currency,
			CreatedAt:   p.CreatedAt,
		}
		if err := uc.es.Index(ctx, uc.opts.SearchIndex, strconv.FormatInt(p.ID, 10), doc); err != nil {
			return indexed, fmt.Errorf("index product %d: %w", p.ID, err)
		}
		indexed++
	}

	uc.logger.Info("search index rebuilt", zap.String("index", uc.opts.SearchIndex), zap.Int("products", indexed))
	return indexed, nil
}
