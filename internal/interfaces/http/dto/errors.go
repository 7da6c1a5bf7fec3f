package dto

import (
	"net/http"

	"github.com/freshmart/backend/internal/domain/shared"
)

// Error codes carried in the envelope's error.code field
const (
	ErrCodeInternal          = "ERR_INTERNAL"
	ErrCodeValidation        = "ERR_VALIDATION"
	ErrCodeBadRequest        = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput      = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON       = "ERR_INVALID_JSON"
	ErrCodePayloadTooLarge   = "ERR_PAYLOAD_TOO_LARGE"
	ErrCodeUnauthorized      = "ERR_UNAUTHORIZED"
	ErrCodeForbidden         = "ERR_FORBIDDEN"
	ErrCodeNotFound          = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists     = "ERR_ALREADY_EXISTS"
	ErrCodeConflict          = "ERR_CONFLICT"
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	ErrCodeRateLimited       = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Duplicates are
// reported as 400 and stock or state violations as 422.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidJSON:       http.StatusBadRequest,
	ErrCodePayloadTooLarge:   http.StatusRequestEntityTooLarge,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeAlreadyExists:     http.StatusBadRequest,
	ErrCodeConflict:          http.StatusConflict,
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeRateLimited:       http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainCodes translates shared.DomainError codes into envelope codes
var domainCodes = map[string]string{
	shared.CodeNotFound:          ErrCodeNotFound,
	shared.CodeAlreadyExists:     ErrCodeAlreadyExists,
	shared.CodeInvalidInput:      ErrCodeInvalidInput,
	shared.CodeInvalidState:      ErrCodeInvalidState,
	shared.CodeUnauthorized:      ErrCodeUnauthorized,
	shared.CodeForbidden:         ErrCodeForbidden,
	shared.CodeInsufficientStock: ErrCodeInsufficientStock,
	"VALIDATION_ERROR":           ErrCodeValidation,
	"BAD_REQUEST":                ErrCodeBadRequest,
	"INTERNAL_ERROR":             ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its envelope code.
// Envelope codes and unknown codes are returned unchanged.
func NormalizeErrorCode(code string) string {
	if c, ok := domainCodes[code]; ok {
		return c
	}
	return code
}
