package dto

import (
	"net/http"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// Domain error codes, as carried by shared.DomainError
const (
	ErrCodeValidation    = shared.CodeValidation
	ErrCodeConflict      = shared.CodeConflict
	ErrCodeNotFound      = shared.CodeNotFound
	ErrCodeMalformedData = shared.CodeMalformedData
	ErrCodeUpstream      = shared.CodeUpstream
)

// Transport error codes, raised before a request reaches a service
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeRequestTooLarge    = "REQUEST_TOO_LARGE"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeMalformedData: http.StatusUnprocessableEntity,
	ErrCodeUpstream:      http.StatusInternalServerError,

	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
