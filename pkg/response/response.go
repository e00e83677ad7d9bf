// Package response holds the JSON envelopes the API writes and the single
// table that turns domain errors into HTTP statuses.
package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/storefront-catalog/internal/repository"
	"github.com/maxviazov/storefront-catalog/internal/service"
)

// RequestIDKey is the gin context key the request id middleware stores under.
const RequestIDKey = "request_id"

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
	RequestID   string               `json:"request_id,omitempty"`
}

type statusCode struct {
	target error
	status int
	code   string
}

// errorTable is checked in order; the first errors.Is match wins.
var errorTable = []statusCode{
	{repository.ErrNotFound, http.StatusNotFound, "not_found"},
	{repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
	{repository.ErrConflict, http.StatusConflict, "conflict"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

// MapError converts a domain or infrastructure error into an HTTP status and
// payload. Anything unrecognized is a 500 with no internal detail leaked.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}
	for _, e := range errorTable {
		if errors.Is(err, e.target) {
			return e.status, ErrorPayload{Error: e.code}
		}
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError writes an error response and aborts the context. The error is
// attached to the gin context so the access log can report it, and the
// request id is echoed so clients can quote it.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	payload.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
