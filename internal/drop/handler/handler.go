package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/drop"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type DropHandler struct {
	uc     drop.UseCase
	logger logger.ZapLogger
}

func NewDropHandler(uc drop.UseCase, log logger.ZapLogger) *DropHandler {
	return &DropHandler{uc: uc, logger: log}
}

func (h *DropHandler) RegisterRoutes(r chi.Router) {
	r.Get("/drops/{status}", h.ListDrops)
	r.Get("/drop/{slug}", h.GetDrop)
}

func (h *DropHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/drops", h.ListForAdmin)
}

func (h *DropHandler) ListDrops(w http.ResponseWriter, r *http.Request) {
	drops, err := h.uc.ListDrops(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, drops)
}

func (h *DropHandler) GetDrop(w http.ResponseWriter, r *http.Request) {
	detail, err := h.uc.GetDrop(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *DropHandler) ListForAdmin(w http.ResponseWriter, r *http.Request) {
	drops, err := h.uc.ListForAdmin(r.Context())
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, drops)
}
