package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/admin"
	"github.com/fekuna/omnipos-storefront/internal/admin/dto"
	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	uc     admin.UseCase
	logger logger.ZapLogger
}

func NewAdminHandler(uc admin.UseCase, log logger.ZapLogger) *AdminHandler {
	return &AdminHandler{uc: uc, logger: log}
}

// RegisterPublicRoutes mounts the routes reachable without credentials.
func (h *AdminHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/login", h.Login)
}

func (h *AdminHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/stats", h.Stats)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input dto.LoginInput
	if !httpx.DecodeJSON(w, r, &input) {
		return
	}

	res, err := h.uc.Login(r.Context(), &input)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uc.Stats(r.Context())
	if err != nil {
		httpx.WriteErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, stats)
}
