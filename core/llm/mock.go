package llm

import (
	"context"
	"sync"
)

// MockGenerator is an in-memory Generator for tests and examples.
type MockGenerator struct {
	mu sync.Mutex

	Response     string
	Err          error
	GenerateFunc func(ctx context.Context, system string, prompt string, opts GenerateOptions) (string, error)

	// Calls records the user prompt of every Generate call, in call order.
	Calls []string
	// Opts records the options of every Generate call, in call order.
	Opts []GenerateOptions
}

func (m *MockGenerator) Generate(ctx context.Context, system string, prompt string, opts GenerateOptions) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, prompt)
	m.Opts = append(m.Opts, opts)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, system, prompt, opts)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// CallCount returns the number of Generate calls so far.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockEmbedder returns an EmbedFunc that always yields the given vector.
func MockEmbedder(embedding []float32) EmbedFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedding, nil
	}
}

// FailingEmbedder returns an EmbedFunc that always fails with err.
func FailingEmbedder(err error) EmbedFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return nil, err
	}
}

var _ Generator = (*MockGenerator)(nil)
