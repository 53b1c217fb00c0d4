package dto

// Response is the envelope of every API response. Error is a
// human-readable sentence and Code its machine-readable classification.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Total     *int64 `json:"total,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any, message string) Response {
	return Response{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// NewListResponse creates a success response for a list endpoint. Total
// is always present, zero included.
func NewListResponse(data any, total int64, message string) Response {
	return Response{
		Success: true,
		Data:    data,
		Total:   &total,
		Message: message,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error:   message,
		Code:    code,
	}
}

// NewErrorResponseWithRequestID creates an error response carrying the
// request id so a client can quote it when reporting a failure.
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.RequestID = requestID
	return resp
}

// ListQuery holds the pagination, search and ordering parameters shared by
// every list endpoint. Pointers distinguish absent from zero. An order_by
// column the resource does not allow falls back to created_at.
type ListQuery struct {
	Limit    *int   `form:"limit"`
	Offset   *int   `form:"offset"`
	Search   string `form:"search" binding:"max=200"`
	OrderBy  string `form:"order_by" binding:"max=64"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc ASC DESC"`
}

// Ref carries the record identifier of an update body, which may arrive as
// "$id" or "id".
type Ref struct {
	DollarID string `json:"$id"`
	ID       string `json:"id"`
}

// Value returns the supplied identifier, preferring "$id".
func (r Ref) Value() string {
	if r.DollarID != "" {
		return r.DollarID
	}
	return r.ID
}
