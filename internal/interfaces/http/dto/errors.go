package dto

import (
	"net/http"
	"strings"
)

// Domain error codes carried over the API unchanged; only the HTTP status
// is derived here.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound:   http.StatusNotFound,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"RESYNC_IN_PROGRESS":   http.StatusConflict,

	// business rule violations
	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"INVALID_STATUS":      http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":  http.StatusUnprocessableEntity,
	"PRODUCT_UNAVAILABLE": http.StatusUnprocessableEntity,
	"EMPTY_ORDER":         http.StatusUnprocessableEntity,
	"ALREADY_ACTIVE":      http.StatusUnprocessableEntity,
	"ALREADY_INACTIVE":    http.StatusUnprocessableEntity,
	"ALREADY_APPROVED":    http.StatusUnprocessableEntity,
	"ALREADY_REJECTED":    http.StatusUnprocessableEntity,
	"INVALID_FLASH_PRICE": http.StatusUnprocessableEntity,
	"SLUG_EXHAUSTED":      http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// INVALID_ codes not listed above are input validation failures; anything
// unrecognized is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
