package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("Drop not found")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Invalid("email is required")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InsufficientStock(3)))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(fmt.Errorf("place order: %w", InsufficientStock(3))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("connection reset")))
}

func TestMessages(t *testing.T) {
	err := InsufficientStock(42)
	assert.Equal(t, "Insufficient stock for variant 42", err.Error())
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.ErrorIs(t, NotFound("Product %s not found", "tee"), ErrNotFound)
}
