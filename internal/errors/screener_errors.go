package errors

import (
	"fmt"
	"strings"
)

// ErrorCategory represents different types of errors that can occur during a run
type ErrorCategory string

const (
	// Fatal errors that abort the run
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"
	ErrorCategoryFatal         ErrorCategory = "FATAL"

	// Per-symbol errors recovered locally, never abort the batch
	ErrorCategoryDataUnavailable       ErrorCategory = "DATA_UNAVAILABLE"
	ErrorCategoryComputationDegenerate ErrorCategory = "COMPUTATION_DEGENERATE"
	ErrorCategoryExternalFetch         ErrorCategory = "EXTERNAL_FETCH"

	// Transient errors worth retrying before giving up on a symbol
	ErrorCategoryNetwork   ErrorCategory = "NETWORK"
	ErrorCategoryTimeout   ErrorCategory = "TIMEOUT"
	ErrorCategoryRateLimit ErrorCategory = "RATE_LIMIT"

	ErrorCategoryValidation ErrorCategory = "VALIDATION"
	ErrorCategoryOrder      ErrorCategory = "ORDER"
	ErrorCategoryPosition   ErrorCategory = "POSITION"
)

// ScreenerError represents a categorized error with context
type ScreenerError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Symbol     string
	Underlying error
	Retryable  bool
}

// Error implements the error interface
func (e *ScreenerError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s:%s] %s", e.Category, e.Component, e.Operation)
	if e.Symbol != "" {
		fmt.Fprintf(&sb, " symbol=%s", e.Symbol)
	}
	if e.Message != "" {
		fmt.Fprintf(&sb, ": %s", e.Message)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&sb, ": %v", e.Underlying)
	}
	return sb.String()
}

// Unwrap returns the underlying error for error unwrapping
func (e *ScreenerError) Unwrap() error {
	return e.Underlying
}

// IsRetryable returns whether this error can be retried
func (e *ScreenerError) IsRetryable() bool {
	return e.Retryable
}

// IsFatal returns whether this error should abort the whole run
func (e *ScreenerError) IsFatal() bool {
	return e.Category == ErrorCategoryFatal || e.Category == ErrorCategoryConfiguration
}

// New creates a new categorized screener error
func New(category ErrorCategory, component, operation, message string) *ScreenerError {
	return &ScreenerError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Retryable: isRetryableCategory(category),
	}
}

// Wrap wraps an existing error with screener error context
func Wrap(err error, category ErrorCategory, component, operation string) *ScreenerError {
	if err == nil {
		return nil
	}
	return &ScreenerError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Underlying: err,
		Retryable:  isRetryableCategory(category),
	}
}

// WithSymbol attaches the ticker the error occurred on
func (e *ScreenerError) WithSymbol(symbol string) *ScreenerError {
	e.Symbol = symbol
	return e
}

// WithRetryable overrides the retryable flag
func (e *ScreenerError) WithRetryable(retryable bool) *ScreenerError {
	e.Retryable = retryable
	return e
}

func isRetryableCategory(category ErrorCategory) bool {
	switch category {
	case ErrorCategoryNetwork, ErrorCategoryTimeout, ErrorCategoryRateLimit, ErrorCategoryExternalFetch:
		return true
	default:
		return false
	}
}

// Categorize attempts to classify a generic error by its message
func Categorize(err error, component, operation string) *ScreenerError {
	if err == nil {
		return nil
	}
	if scrErr, ok := err.(*ScreenerError); ok {
		return scrErr
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "context deadline exceeded") {
		return Wrap(err, ErrorCategoryTimeout, component, operation)
	}
	if strings.Contains(errMsg, "rate limit") || strings.Contains(errMsg, "too many requests") {
		return Wrap(err, ErrorCategoryRateLimit, component, operation)
	}
	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") ||
		strings.Contains(errMsg, "dns") || strings.Contains(errMsg, "dial") {
		return Wrap(err, ErrorCategoryNetwork, component, operation)
	}
	if strings.Contains(errMsg, "no such file") || strings.Contains(errMsg, "insufficient") ||
		strings.Contains(errMsg, "missing column") {
		return Wrap(err, ErrorCategoryDataUnavailable, component, operation)
	}

	return Wrap(err, ErrorCategoryFatal, component, operation).WithRetryable(false)
}

// IsDataUnavailable reports whether err is a recoverable per-symbol data error
func IsDataUnavailable(err error) bool {
	scrErr, ok := err.(*ScreenerError)
	return ok && scrErr.Category == ErrorCategoryDataUnavailable
}

// IsConfiguration reports whether err is a fatal configuration error
func IsConfiguration(err error) bool {
	scrErr, ok := err.(*ScreenerError)
	return ok && scrErr.Category == ErrorCategoryConfiguration
}
