package errors

import (
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ValidationError       ErrorCode = "VALIDATION_ERROR"
	InvalidJSON           ErrorCode = "INVALID_JSON"
	Unauthorized          ErrorCode = "UNAUTHORIZED"
	EmailExists           ErrorCode = "EMAIL_EXISTS"
	InsufficientFunds     ErrorCode = "INSUFFICIENT_FUNDS"
	MissingIdempotencyKey ErrorCode = "MISSING_IDEMPOTENCY_KEY"
	InvalidIdempotencyKey ErrorCode = "INVALID_IDEMPOTENCY_KEY"
	RateLimitExceeded     ErrorCode = "RATE_LIMIT_EXCEEDED"
	NotFound              ErrorCode = "NOT_FOUND"
	InternalError         ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// HTTPStatus maps an error code to the transport-level status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ValidationError, InvalidJSON, InsufficientFunds,
		MissingIdempotencyKey, InvalidIdempotencyKey:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case EmailExists:
		return http.StatusConflict
	case RateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors for common cases
var (
	ErrEmailExists       = NewAppError(EmailExists, "a user with this email already exists")
	ErrInsufficientFunds = NewAppError(InsufficientFunds, "insufficient balance for this withdrawal")
	ErrUnauthorized      = NewAppError(Unauthorized, "missing or invalid Authorization header")
)
