package httpx

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-storefront/pkg/apperror"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// WriteErr reports err with the status its kind maps to. Unexpected errors
// are logged and replaced by a generic message.
func WriteErr(w http.ResponseWriter, r *http.Request, log logger.ZapLogger, err error) {
	status := apperror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		WriteError(w, status, internalErrorMessage)
		return
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		WriteError(w, status, appErr.Message)
		return
	}
	WriteError(w, status, err.Error())
}
