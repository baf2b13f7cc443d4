package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/product"
	"github.com/fekuna/omnipos-storefront/internal/product/dto"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/product/{slug}", h.GetProduct)
}

func (h *ProductHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/products", h.ListForAdmin)
	r.Post("/search/reindex", h.Reindex)
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := &dto.ProductFilters{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if raw := q.Get("drop_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "drop_id must be an integer")
			return
		}
		filters.DropID = &id
	}

	products, err := h.uc.ListProducts(r.Context(), filters)
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.uc.GetProductDetail(r.Context(), &dto.DetailInput{
		Slug:     chi.URLParam(r, "slug"),
		Currency: r.URL.Query().Get("currency"),
	})
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *ProductHandler) ListForAdmin(w http.ResponseWriter, r *http.Request) {
	products, err := h.uc.ListForAdmin(r.Context())
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	n, err := h.uc.Reindex(r.Context())
	if err != nil {
		h.logger.Error("failed to reindex products", zap.Error(err))
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "indexed": n})
}
