package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/subscription"
	"github.com/fekuna/omnipos-storefront/internal/subscription/dto"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type SubscriptionHandler struct {
	uc     subscription.UseCase
	logger logger.ZapLogger
}

func NewSubscriptionHandler(uc subscription.UseCase, log logger.ZapLogger) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, logger: log}
}

func (h *SubscriptionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/subscribe", h.Subscribe)
	r.Post("/drop-notify/{drop_id}", h.NotifyDrop)
	r.Post("/stock-notify", h.NotifyStock)
}

func (h *SubscriptionHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/subscribers", h.ListSubscribers)
}

func (h *SubscriptionHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var input dto.SubscribeInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}
	res, err := h.uc.Subscribe(r.Context(), &input)
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *SubscriptionHandler) NotifyDrop(w http.ResponseWriter, r *http.Request) {
	dropID, ok := httpx.URLParamInt64(r, "drop_id")
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "drop_id must be a positive integer")
		return
	}
	var input dto.DropNotifyInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}
	res, err := h.uc.NotifyDrop(r.Context(), dropID, &input)
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *SubscriptionHandler) NotifyStock(w http.ResponseWriter, r *http.Request) {
	var input dto.StockNotifyInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}
	res, err := h.uc.NotifyStock(r.Context(), &input)
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *SubscriptionHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subs, err := h.uc.ListSubscribers(r.Context())
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, subs)
}
