package model

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class for programmatic handling.
type ErrorCode string

const (
	ErrCodeStoreUnavailable     ErrorCode = "STORE_UNAVAILABLE"
	ErrCodeQuerySyntax          ErrorCode = "QUERY_SYNTAX"
	ErrCodeEmbeddingFailed      ErrorCode = "EMBEDDING_FAILED"
	ErrCodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	ErrCodeTimeout              ErrorCode = "TIMEOUT"
	ErrCodeRetrievalUnavailable ErrorCode = "RETRIEVAL_UNAVAILABLE"
	ErrCodeInvalidConfig        ErrorCode = "INVALID_CONFIG"
)

// RAGError is a structured error carrying a code, an optional underlying
// cause, the query that triggered it when applicable, and whether the
// operation may be retried.
type RAGError struct {
	Code      ErrorCode
	Message   string
	Cause     error
	Query     string
	Retryable bool
}

// Error formats as "[CODE] message" or "[CODE] message: cause".
func (e *RAGError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As chains.
func (e *RAGError) Unwrap() error {
	return e.Cause
}

// Is matches another RAGError by code.
func (e *RAGError) Is(target error) bool {
	var ragErr *RAGError
	if errors.As(target, &ragErr) {
		return e.Code == ragErr.Code
	}
	return false
}

// WithQuery attaches the query that caused the error.
func (e *RAGError) WithQuery(query string) *RAGError {
	e.Query = query
	return e
}

// NewRAGError creates a non-retryable error with the given code.
func NewRAGError(code ErrorCode, message string) *RAGError {
	return &RAGError{Code: code, Message: message}
}

// NewRetryableRAGError creates a retryable error, for transient conditions
// such as network timeouts on a store connection.
func NewRetryableRAGError(code ErrorCode, message string) *RAGError {
	return &RAGError{Code: code, Message: message, Retryable: true}
}

// WrapRAGError wraps an underlying cause with a code.
func WrapRAGError(code ErrorCode, message string, cause error) *RAGError {
	return &RAGError{Code: code, Message: message, Cause: cause}
}

// WrapRetryableRAGError wraps an underlying cause with a code, marked retryable.
func WrapRetryableRAGError(code ErrorCode, message string, cause error) *RAGError {
	return &RAGError{Code: code, Message: message, Cause: cause, Retryable: true}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var ragErr *RAGError
	if errors.As(err, &ragErr) {
		return ragErr.Code == code
	}
	return false
}

// IsRetryable reports whether err is marked as retryable.
func IsRetryable(err error) bool {
	var ragErr *RAGError
	if errors.As(err, &ragErr) {
		return ragErr.Retryable
	}
	return false
}
