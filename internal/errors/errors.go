// Package errors provides custom error types for the Marketbook API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Tenant & user errors.
var (
	ErrTenantNotFound = &AppError{Code: "TENANT_NOT_FOUND", Message: "Tenant not found", StatusCode: http.StatusNotFound}
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Product errors.
var (
	ErrProductNotFound = &AppError{Code: "PRODUCT_NOT_FOUND", Message: "Product not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSKU    = &AppError{Code: "DUPLICATE_SKU", Message: "A product with this SKU already exists", StatusCode: http.StatusConflict}
	ErrProductInUse    = &AppError{Code: "PRODUCT_IN_USE", Message: "Product has recorded sales and cannot be deleted", StatusCode: http.StatusConflict}
)

// Sale errors.
var (
	ErrSaleNotFound   = &AppError{Code: "SALE_NOT_FOUND", Message: "Sale not found", StatusCode: http.StatusNotFound}
	ErrInvalidChannel = &AppError{Code: "INVALID_CHANNEL", Message: "Unsupported sales channel", StatusCode: http.StatusBadRequest}
)

// Audit ledger errors. A failed audit write is surfaced, never swallowed:
// callers must know when an action went unrecorded.
var (
	ErrAuditWriteFailed = &AppError{Code: "AUDIT_WRITE_FAILED", Message: "Failed to record audit entry", StatusCode: http.StatusInternalServerError}
)
