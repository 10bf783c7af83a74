// Package errors provides custom error types for the homeledger API.
// All store-layer errors should use AppError so callers get a stable code
// and a message naming the offending field, never internal details.
package errors

import (
	stderrors "errors"
	"net/http"
)

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

// Is reports whether target is an AppError with the same code, so a
// WithMessage copy still matches its sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

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

// Code returns the AppError code carried by err, or ErrInternalServer's code
// for anything else.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternalServer.Code
}

// General errors.
var (
	ErrInvalidInput         = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound             = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrConfirmationRequired = &AppError{Code: "CONFIRMATION_REQUIRED", Message: "This operation is irreversible; pass confirm=true", StatusCode: http.StatusBadRequest}
	ErrInternalServer       = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
	ErrPersistence          = &AppError{Code: "PERSISTENCE_ERROR", Message: "Could not read or write the ledger data", StatusCode: http.StatusInternalServerError}
)

// Record validation errors.
var (
	ErrInvalidAmount = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a number greater than zero", StatusCode: http.StatusBadRequest}
	ErrMissingField  = &AppError{Code: "MISSING_FIELD", Message: "A required field is empty", StatusCode: http.StatusBadRequest}
	ErrInvalidDate   = &AppError{Code: "INVALID_DATE", Message: "Date must use the YYYY-MM-DD format", StatusCode: http.StatusBadRequest}
	ErrInvalidNumber = &AppError{Code: "INVALID_NUMBER", Message: "Amount or ratio field is not a number", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidEntryKind    = &AppError{Code: "INVALID_ENTRY_KIND", Message: "Entry kind must be income or expense", StatusCode: http.StatusBadRequest}
)

// Asset errors.
var (
	ErrAssetNotFound = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
)

// Import errors.
var (
	ErrImportFailed = &AppError{Code: "IMPORT_FAILED", Message: "Import failed", StatusCode: http.StatusBadRequest}
)
