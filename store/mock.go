package store

import (
	"context"
	"sync"

	"github.com/kuzudb/graph-rag/model"
)

// MockGraphStore is an in-memory GraphStore for tests and examples.
// Responses can be fixed via the fields or computed via the Func hooks.
type MockGraphStore struct {
	mu sync.Mutex

	Schema    *model.SchemaDescriptor
	SchemaErr error

	Result      *QueryResult
	ExecErr     error
	ExecuteFunc func(ctx context.Context, query string) (*QueryResult, error)

	// Queries records every query passed to Execute, in call order.
	Queries []string

	CloseErr error
	Closed   bool
}

func (m *MockGraphStore) DescribeSchema(ctx context.Context) (*model.SchemaDescriptor, error) {
	if m.SchemaErr != nil {
		return nil, m.SchemaErr
	}
	return m.Schema, nil
}

func (m *MockGraphStore) Execute(ctx context.Context, query string) (*QueryResult, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	if m.ExecErr != nil {
		return nil, m.ExecErr
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &QueryResult{}, nil
}

func (m *MockGraphStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.CloseErr
}

// MockVectorStore is an in-memory VectorStore for tests and examples.
type MockVectorStore struct {
	mu sync.Mutex

	Chunks     []model.Chunk
	SearchErr  error
	SearchFunc func(ctx context.Context, embedding []float32, limit int) ([]model.Chunk, error)

	// Searches records the limit of every Search call, in call order.
	Searches []int

	CloseErr error
	Closed   bool
}

func (m *MockVectorStore) Search(ctx context.Context, embedding []float32, limit int) ([]model.Chunk, error) {
	m.mu.Lock()
	m.Searches = append(m.Searches, limit)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, embedding, limit)
	}
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if limit < len(m.Chunks) {
		return m.Chunks[:limit], nil
	}
	return m.Chunks, nil
}

func (m *MockVectorStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.CloseErr
}

var (
	_ GraphStore  = (*MockGraphStore)(nil)
	_ VectorStore = (*MockVectorStore)(nil)
)
