package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.PlaceOrder)
	r.Get("/order/{order_number}", h.GetOrder)
}

func (h *OrderHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/orders", h.ListRecent)
	r.Patch("/orders/{order_number}/status", h.UpdateStatus)
}

func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var input dto.PlaceOrderInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}

	result, err := h.uc.PlaceOrder(r.Context(), &input)
	if err != nil {
		h.logger.Warn("order rejected", zap.String("customer_email", input.CustomerEmail), zap.Error(err))
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, result)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	detail, err := h.uc.GetOrder(r.Context(), chi.URLParam(r, "order_number"))
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detail)
}

func (h *OrderHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	orders, err := h.uc.ListRecent(r.Context(), httpx.QueryInt(r, "limit", 50))
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var input dto.UpdateStatusInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}

	o, err := h.uc.UpdateStatus(r.Context(), chi.URLParam(r, "order_number"), input.Status)
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}
