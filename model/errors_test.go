package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRAGErrorFormat(t *testing.T) {
	t.Run("Error without cause", func(t *testing.T) {
		err := NewRAGError(ErrCodeStoreUnavailable, "graph store unreachable")

		assert.Equal(t, "[STORE_UNAVAILABLE] graph store unreachable", err.Error())
	})

	t.Run("Error with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := WrapRAGError(ErrCodeStoreUnavailable, "graph store unreachable", cause)

		assert.Equal(t, "[STORE_UNAVAILABLE] graph store unreachable: connection refused", err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
	})
}

func TestRAGErrorMatching(t *testing.T) {
	t.Run("IsCode matches direct error", func(t *testing.T) {
		err := NewRAGError(ErrCodeQuerySyntax, "bad cypher")

		assert.True(t, IsCode(err, ErrCodeQuerySyntax))
		assert.False(t, IsCode(err, ErrCodeTimeout))
	})

	t.Run("IsCode matches through wrapping", func(t *testing.T) {
		err := fmt.Errorf("run failed: %w", NewRAGError(ErrCodeRetrievalUnavailable, "both branches failed"))

		assert.True(t, IsCode(err, ErrCodeRetrievalUnavailable))
	})

	t.Run("errors.Is matches by code", func(t *testing.T) {
		err := WrapRAGError(ErrCodeTimeout, "call timed out", errors.New("deadline exceeded"))

		assert.True(t, errors.Is(err, NewRAGError(ErrCodeTimeout, "")))
	})

	t.Run("IsCode on plain error", func(t *testing.T) {
		assert.False(t, IsCode(errors.New("plain"), ErrCodeTimeout))
	})
}

func TestRAGErrorRetryable(t *testing.T) {
	t.Run("Retryable error", func(t *testing.T) {
		err := NewRetryableRAGError(ErrCodeStoreUnavailable, "transient")

		assert.True(t, IsRetryable(err))
	})

	t.Run("Non-retryable error", func(t *testing.T) {
		err := NewRAGError(ErrCodeQuerySyntax, "permanent")

		assert.False(t, IsRetryable(err))
	})

	t.Run("Retryable survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("branch: %w", WrapRetryableRAGError(ErrCodeTimeout, "timeout", errors.New("deadline")))

		assert.True(t, IsRetryable(err))
	})
}

func TestRAGErrorWithQuery(t *testing.T) {
	err := NewRAGError(ErrCodeQuerySyntax, "rejected by store").WithQuery("MATCH (n RETURN n")

	require.NotNil(t, err)
	assert.Equal(t, "MATCH (n RETURN n", err.Query)
}
