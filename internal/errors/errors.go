// Package errors provides custom error types for the Fiscus API.
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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrCategoryInUse    = &AppError{Code: "CATEGORY_IN_USE", Message: "Category is used by existing transactions", StatusCode: http.StatusConflict}
)

// Transaction errors.
var (
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrAlreadyPaid         = &AppError{Code: "ALREADY_PAID", Message: "Transaction is already paid", StatusCode: http.StatusConflict}
)

// Budget errors.
var (
	ErrBudgetNotFound      = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetNotStarted    = &AppError{Code: "BUDGET_NOT_STARTED", Message: "Budget cannot be activated before its start date", StatusCode: http.StatusConflict}
	ErrBudgetNotCompleted  = &AppError{Code: "BUDGET_NOT_COMPLETED", Message: "Only completed budgets can be reactivated", StatusCode: http.StatusConflict}
	ErrSystemBudgetMissing = &AppError{Code: "SYSTEM_BUDGET_MISSING", Message: "System budgets have not been generated for this month", StatusCode: http.StatusNotFound}
)

// Goal errors.
var (
	ErrGoalNotFound  = &AppError{Code: "GOAL_NOT_FOUND", Message: "Goal not found", StatusCode: http.StatusNotFound}
	ErrGoalNotActive = &AppError{Code: "GOAL_NOT_ACTIVE", Message: "Goal is not active", StatusCode: http.StatusConflict}
)

// Synchronizer errors.
var (
	ErrSyncInProgress = &AppError{Code: "SYNC_IN_PROGRESS", Message: "A system budget synchronization is already running", StatusCode: http.StatusConflict}
)
