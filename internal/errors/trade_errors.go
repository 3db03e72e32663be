package errors

import "fmt"

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	// Critical errors that should stop the runner
	ErrorCategoryFatal         ErrorCategory = "FATAL"
	ErrorCategoryCredentials   ErrorCategory = "CREDENTIALS"
	ErrorCategoryConfiguration ErrorCategory = "CONFIG"

	// Non-critical errors that can be retried or recovered from
	ErrorCategoryNetwork    ErrorCategory = "NETWORK"
	ErrorCategoryValidation ErrorCategory = "VALIDATION"
	ErrorCategoryExecution  ErrorCategory = "EXECUTION"
	ErrorCategoryRisk       ErrorCategory = "RISK"
	ErrorCategoryAudit      ErrorCategory = "AUDIT"
)

// TradeError represents a categorized error with component context
type TradeError struct {
	Category   ErrorCategory
	Component  string
	Operation  string
	Message    string
	Underlying error
	Retryable  bool
}

// Error implements the error interface
func (e *TradeError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("[%s:%s] %s in %s: %v", e.Category, e.Component, e.Message, e.Operation, e.Underlying)
	}
	return fmt.Sprintf("[%s:%s] %s in %s", e.Category, e.Component, e.Message, e.Operation)
}

// Unwrap returns the underlying error for error unwrapping
func (e *TradeError) Unwrap() error {
	return e.Underlying
}

// IsFatal returns whether this error should stop the runner
func (e *TradeError) IsFatal() bool {
	return e.Category == ErrorCategoryFatal ||
		e.Category == ErrorCategoryCredentials ||
		e.Category == ErrorCategoryConfiguration
}

// New creates a new categorized trade error
func New(category ErrorCategory, component, operation, message string) *TradeError {
	return &TradeError{
		Category:  category,
		Component: component,
		Operation: operation,
		Message:   message,
		Retryable: isRetryableCategory(category),
	}
}

// Wrap wraps an existing error with trade error context
func Wrap(err error, category ErrorCategory, component, operation string) *TradeError {
	if err == nil {
		return nil
	}
	return &TradeError{
		Category:   category,
		Component:  component,
		Operation:  operation,
		Message:    "operation failed",
		Underlying: err,
		Retryable:  isRetryableCategory(category),
	}
}

func isRetryableCategory(category ErrorCategory) bool {
	switch category {
	case ErrorCategoryNetwork, ErrorCategoryExecution, ErrorCategoryAudit:
		return true
	default:
		return false
	}
}
