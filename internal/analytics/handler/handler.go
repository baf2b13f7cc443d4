package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/analytics"
	"github.com/fekuna/omnipos-storefront/internal/analytics/dto"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type AnalyticsHandler struct {
	uc     analytics.UseCase
	logger logger.ZapLogger
}

func NewAnalyticsHandler(uc analytics.UseCase, log logger.ZapLogger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, logger: log}
}

func (h *AnalyticsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/analytics", h.Track)
}

func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var input dto.TrackInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}
	input.Country = r.Header.Get("CF-IPCountry")
	input.SessionID = r.Header.Get("X-Session-Id")

	if err := h.uc.Track(r.Context(), &input); err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
