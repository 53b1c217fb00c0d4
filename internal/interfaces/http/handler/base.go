package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey is the gin context key set by the RequestID middleware
const RequestIDKey = "request_id"

const genericFailure = "An unexpected error occurred"

// ErrorRecorder counts domain errors returned to clients
type ErrorRecorder interface {
	RecordDomainError(ctx context.Context, resource, code string)
}

// Options are shared by every handler.
type Options struct {
	// ExposeErrorDetail echoes the underlying cause of upstream failures
	// in the response. Off in production.
	ExposeErrorDetail bool
	Errors            ErrorRecorder
}

// BaseHandler provides common handler utilities
type BaseHandler struct {
	resource string
	opts     Options
}

// NewBaseHandler creates a BaseHandler for the named resource.
func NewBaseHandler(resource string, opts Options) BaseHandler {
	return BaseHandler{resource: resource, opts: opts}
}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data, message))
}

// SuccessList sends a 200 response with the list total
func (h *BaseHandler) SuccessList(c *gin.Context, data any, total int64, message string) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total, message))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}

// Error sends an error response, deriving the status from the code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 for a body or query that could not be read
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// HandleDomainError converts domain errors to HTTP responses. Upstream
// failures are logged in full and answered with a generic message unless
// detail exposure is on.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	ctx := c.Request.Context()

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.L(ctx).Error("Unclassified handler error",
			zap.String("resource", h.resource),
			zap.Error(err),
		)
		h.record(ctx, dto.ErrCodeInternal)
		h.Error(c, dto.ErrCodeInternal, h.detail(err))
		return
	}

	h.record(ctx, domainErr.Code)
	message := domainErr.Message
	if domainErr.Code == shared.CodeUpstream {
		message = h.detail(err)
	}
	h.Error(c, domainErr.Code, message)
}

func (h *BaseHandler) detail(err error) string {
	if h.opts.ExposeErrorDetail {
		return err.Error()
	}
	return genericFailure
}

func (h *BaseHandler) record(ctx context.Context, code string) {
	if h.opts.Errors != nil {
		h.opts.Errors.RecordDomainError(ctx, h.resource, code)
	}
}
