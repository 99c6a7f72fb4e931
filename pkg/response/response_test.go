package response_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/subnets-service/internal/pagination"
	"github.com/maxviazov/subnets-service/internal/repository"
	"github.com/maxviazov/subnets-service/internal/service"
	"github.com/maxviazov/subnets-service/pkg/response"
)

func TestMapError(t *testing.T) {
	invalid := service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "bad"}})
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
		wantMsg  string
	}{
		{"page_size", &pagination.InvalidPageSizeError{Size: 101, Max: 100}, 400, response.CodeInvalidPageSize, "The page size '101' is not between '1' and '100'"},
		{"page_expired", pagination.NewPageExpired("abc"), 404, response.CodePageExpired, "Page abc has expired"},
		{"conflicting", pagination.ErrConflictingParams, 400, response.CodeInvalidQueryParams, pagination.ErrConflictingParams.Error()},
		{"invalid_json", fmt.Errorf("%w: unexpected EOF", service.ErrInvalidJSON), 400, response.CodeInvalidJSON, "invalid JSON body: unexpected EOF"},
		{"invalid_input", invalid, 400, response.CodeInvalidEntity, ""},
		{"not_found", repository.ErrNotFound, 404, response.CodeNotFound, ""},
		{"already_exists", repository.ErrAlreadyExists, 409, response.CodeAlreadyExists, ""},
		{"conflict", repository.ErrConflict, 409, response.CodeConflict, ""},
		{"internal", errors.New("boom"), 500, response.CodeInternal, "internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Code)
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, payload.Message)
			}
			if tc.wantErr == response.CodeInvalidEntity {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	response.WriteError(c, pagination.NewPageExpired("tok"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, c.IsAborted())
	assert.Len(t, c.Errors, 1)
	var body response.ErrorPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, response.CodePageExpired, body.Code)
	assert.Equal(t, "Page tok has expired", body.Message)
}
