package auth

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront/pkg/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

// Middleware rejects requests the authenticator cannot resolve and puts
// the principal into the request context otherwise.
func Middleware(a Authenticator, log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := a.Authenticate(r)
			if err != nil {
				if !errors.Is(err, ErrUnauthorized) {
					log.Error("admin authentication failed", zap.Error(err))
				}
				w.Header().Set("WWW-Authenticate", `Basic realm="Admin Dashboard"`)
				httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}
