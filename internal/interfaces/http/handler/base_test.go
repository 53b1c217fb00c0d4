package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	return c, w
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name:       "from context",
			setup:      func(c *gin.Context) { c.Set(RequestIDKey, "ctx-request-id") },
			expectedID: "ctx-request-id",
		},
		{
			name:       "from header when context empty",
			setup:      func(c *gin.Context) { c.Request.Header.Set("X-Request-ID", "header-request-id") },
			expectedID: "header-request-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(RequestIDKey, "ctx-id")
				c.Request.Header.Set("X-Request-ID", "header-id")
			},
			expectedID: "ctx-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext()
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestBaseHandler_SuccessList(t *testing.T) {
	h := NewBaseHandler("thing", Options{})
	c, w := testContext()

	h.SuccessList(c, []string{}, 0, "none")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"total":0,"message":"none"}`, w.Body.String())
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")

	tests := []struct {
		name        string
		err         error
		expose      bool
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "validation",
			err:         shared.NewValidationError("company_name is required"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_ERROR",
			wantMessage: "company_name is required",
		},
		{
			name:        "conflict",
			err:         shared.NewConflictError("compliance record already exists"),
			wantStatus:  http.StatusConflict,
			wantCode:    "CONFLICT",
			wantMessage: "compliance record already exists",
		},
		{
			name:        "not found",
			err:         fmt.Errorf("lookup: %w", shared.NewNotFoundError("project", "p1")),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: shared.NewNotFoundError("project", "p1").Message,
		},
		{
			name:        "malformed",
			err:         shared.NewMalformedDataError("bad payload", cause),
			wantStatus:  http.StatusUnprocessableEntity,
			wantCode:    "MALFORMED_DATA",
			wantMessage: "bad payload",
		},
		{
			name:        "upstream hides the cause",
			err:         shared.NewUpstreamError("failed to list project", cause),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "UPSTREAM_ERROR",
			wantMessage: genericFailure,
		},
		{
			name:        "upstream exposes the cause when enabled",
			err:         shared.NewUpstreamError("failed to list project", cause),
			expose:      true,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "UPSTREAM_ERROR",
			wantMessage: shared.NewUpstreamError("failed to list project", cause).Error(),
		},
		{
			name:        "unclassified error",
			err:         cause,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: genericFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &errorRecorder{}
			h := NewBaseHandler("project", Options{ExposeErrorDetail: tt.expose, Errors: recorder})
			c, w := testContext()
			c.Set(RequestIDKey, "req-1")

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantCode, env.Code)
			assert.Equal(t, tt.wantMessage, env.Error)
			assert.Equal(t, "req-1", env.RequestID)

			assert.Equal(t, []recordedError{{resource: "project", code: tt.wantCode}}, recorder.all())
		})
	}
}

func TestBaseHandler_HandleDomainErrorNil(t *testing.T) {
	h := NewBaseHandler("project", Options{})
	c, w := testContext()

	h.HandleDomainError(c, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
