package handler

import (
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/inventory"
	"github.com/fekuna/omnipos-storefront/internal/inventory/dto"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

// RegisterAdminRoutes mounts under /admin.
func (h *InventoryHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/inventory/low-stock", h.ListLowStock)
	r.Get("/inventory/movements", h.ListMovements)
	r.Post("/inventory/adjust", h.AdjustInventory)
}

func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.uc.ListLowStock(r.Context())
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *InventoryHandler) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	var input dto.AdjustInventoryInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}
	input.Operator = auth.Username(r.Context())

	movement, err := h.uc.AdjustInventory(r.Context(), &input)
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, movement)
}

type movementsResponse struct {
	Items    interface{} `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}

func (h *InventoryHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	filters := &dto.MovementFilters{
		MovementType: r.URL.Query().Get("type"),
		Page:         httpx.QueryInt(r, "page", 1),
		PageSize:     httpx.QueryInt(r, "page_size", 0),
	}
	if raw := r.URL.Query().Get("variant_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "variant_id must be an integer")
			return
		}
		filters.VariantID = &id
	}

	items, total, err := h.uc.ListMovements(r.Context(), filters)
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, movementsResponse{
		Items:    items,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}
