package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/region"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type RegionHandler struct {
	uc     region.UseCase
	logger logger.ZapLogger
}

func NewRegionHandler(uc region.UseCase, log logger.ZapLogger) *RegionHandler {
	return &RegionHandler{uc: uc, logger: log}
}

func (h *RegionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/regions", h.ListRegions)
	r.Get("/shipping/{region_code}", h.GetShipping)
}

func (h *RegionHandler) ListRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.uc.ListRegions(r.Context())
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, regions)
}

func (h *RegionHandler) GetShipping(w http.ResponseWriter, r *http.Request) {
	shipping, err := h.uc.GetShipping(r.Context(), chi.URLParam(r, "region_code"))
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, shipping)
}
