// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/subnets-service/internal/pagination"
	"github.com/maxviazov/subnets-service/internal/repository"
	"github.com/maxviazov/subnets-service/internal/service"
)

// Error codes carried in ErrorPayload.Code.
const (
	CodeInvalidPageSize    = "INVALID_PAGE_SIZE"
	CodePageExpired        = "PAGE_EXPIRED"
	CodeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeInvalidEntity      = "INVALID_ENTITY"
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeConflict           = "CONFLICT"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Code        string               `json:"code"`
	Message     string               `json:"message"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Client-facing errors keep their message; internal ones never leak details.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Code: "OK"}
	}

	switch {
	case errors.Is(err, pagination.ErrInvalidPageSize):
		return http.StatusBadRequest, ErrorPayload{Code: CodeInvalidPageSize, Message: err.Error()}
	case errors.Is(err, pagination.ErrPageExpired):
		return http.StatusNotFound, ErrorPayload{Code: CodePageExpired, Message: err.Error()}
	case errors.Is(err, pagination.ErrConflictingParams):
		return http.StatusBadRequest, ErrorPayload{Code: CodeInvalidQueryParams, Message: err.Error()}
	case errors.Is(err, service.ErrInvalidJSON):
		return http.StatusBadRequest, ErrorPayload{Code: CodeInvalidJSON, Message: err.Error()}
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, ErrorPayload{
			Code:        CodeInvalidEntity,
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Code: CodeNotFound, Message: "resource not found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Code: CodeAlreadyExists, Message: "resource already exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Code: CodeConflict, Message: "request conflicts with current state"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Code: CodeInternal, Message: "internal server error"}
	}
}

// WriteError writes an error response and aborts the context.
// The error is attached to the gin context so the access log can report it.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
