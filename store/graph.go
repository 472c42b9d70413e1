package store

import (
	"context"

	"github.com/kuzudb/graph-rag/model"
)

// GraphStore is the property-graph side of retrieval. Implementations must be
// safe for concurrent use; all operations are read-only.
type GraphStore interface {
	// DescribeSchema returns a snapshot of every node and relationship type
	// currently defined in the store. Fails with a STORE_UNAVAILABLE error
	// when the store cannot be reached.
	DescribeSchema(ctx context.Context) (*model.SchemaDescriptor, error)

	// Execute runs a query in the store's query language and returns the
	// ordered result rows. Fails with QUERY_SYNTAX when the store rejects
	// the query and STORE_UNAVAILABLE on connection failure.
	Execute(ctx context.Context, query string) (*QueryResult, error)

	// Close releases the store connection.
	Close(ctx context.Context) error
}

// QueryResult holds the ordered rows of a graph query. Each row is an ordered
// sequence of scalar or composite values.
type QueryResult struct {
	Columns []string
	Rows    [][]any
}
