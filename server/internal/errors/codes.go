package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a specific error type for office availability operations.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates a missing or invalid setting at startup.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeRetrieval indicates the embedding provider or knowledge store failed.
	ErrCodeRetrieval ErrorCode = "RETRIEVAL_ERROR"
	// ErrCodeTimeProvider indicates the time lookup failed.
	ErrCodeTimeProvider ErrorCode = "TIME_PROVIDER_ERROR"
	// ErrCodeNarration indicates the LLM call failed.
	ErrCodeNarration ErrorCode = "NARRATION_ERROR"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeContextCanceled indicates the operation was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// AIError represents a structured error for office availability operations.
type AIError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AIError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error.
func (e *AIError) WithContext(key string, value interface{}) *AIError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetCode returns the error code.
func (e *AIError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// Configuration creates a configuration error.
func Configuration(msg string, cause error) *AIError {
	return &AIError{Code: ErrCodeConfiguration, Message: msg, Cause: cause}
}

// Retrieval creates a retrieval error.
func Retrieval(msg string, cause error) *AIError {
	return &AIError{Code: ErrCodeRetrieval, Message: msg, Cause: cause}
}

// TimeProvider creates a time provider error.
func TimeProvider(tz string, cause error) *AIError {
	err := &AIError{
		Code:    ErrCodeTimeProvider,
		Message: fmt.Sprintf("time lookup failed for %s", tz),
		Cause:   cause,
	}
	return err.WithContext("timezone", tz)
}

// Narration creates a narration error.
func Narration(cause error) *AIError {
	return &AIError{Code: ErrCodeNarration, Message: "narration failed", Cause: cause}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *AIError {
	return &AIError{Code: ErrCodeInvalidArgument, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *AIError {
	return &AIError{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// Wrap wraps an existing error with additional context.
// Cancellation and deadline causes keep their own codes.
func Wrap(cause error, code ErrorCode, msg string) *AIError {
	switch {
	case stderrors.Is(cause, context.Canceled):
		code = ErrCodeContextCanceled
	case stderrors.Is(cause, context.DeadlineExceeded):
		code = ErrCodeTimeout
	}
	return &AIError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error, or any error it wraps, is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	var aiErr *AIError
	if stderrors.As(err, &aiErr) {
		return aiErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an AIError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var aiErr *AIError
	if stderrors.As(err, &aiErr) {
		return aiErr.Code
	}
	return defaultCode
}

// HTTPStatus maps an error to the HTTP status the API responds with.
func HTTPStatus(err error) int {
	switch GetCodeFromError(err, "") {
	case ErrCodeInvalidArgument:
		return http.StatusBadRequest
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeContextCanceled:
		// nginx's "client closed request"
		return 499
	default:
		return http.StatusInternalServerError
	}
}
