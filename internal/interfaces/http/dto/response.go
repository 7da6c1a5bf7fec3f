package dto

import "time"

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorInfo represents error details. Details is either a list of
// ValidationDetail or a role mismatch description.
type ErrorInfo struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ValidationDetail describes one failing request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// RoleMismatch is attached to authorization failures caused by the wrong role
type RoleMismatch struct {
	Reason   string `json:"reason"`
	Required string `json:"required"`
	Current  string `json:"current"`
}

// Meta carries list metadata
type Meta struct {
	Total int64 `json:"total"`
}

// MessageResponse is the payload of delete-style endpoints
type MessageResponse struct {
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewListResponse creates a success response carrying the item count
func NewListResponse(data interface{}, total int) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    &Meta{Total: int64(total)},
	}
}

// NewErrorResponse creates an error response; legacy domain codes are normalized
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      NormalizeErrorCode(code),
			Message:   message,
			Timestamp: time.Now(),
		},
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the request ID
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	resp := NewErrorResponse(code, message)
	resp.Error.RequestID = requestID
	return resp
}

// NewErrorResponseWithDetails creates an error response carrying details
func NewErrorResponseWithDetails(code, message, requestID string, details interface{}) Response {
	resp := NewErrorResponseWithRequestID(code, message, requestID)
	resp.Error.Details = details
	return resp
}

// NewValidationErrorResponse creates a validation error response
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	return NewErrorResponseWithDetails(ErrCodeValidation, message, requestID, details)
}
