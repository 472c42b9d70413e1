package schema

import (
	"context"
	"log/slog"

	"github.com/kuzudb/graph-rag/model"
	"github.com/kuzudb/graph-rag/store"
)

// Introspector produces schema snapshots for query translation.
// Each retrieval run takes a fresh snapshot so concurrent schema changes
// cannot tear a single run's view of the graph.
type Introspector struct {
	store store.GraphStore
	log   *slog.Logger
}

// NewIntrospector creates an introspector over the given graph store.
func NewIntrospector(graphStore store.GraphStore, logger *slog.Logger) *Introspector {
	return &Introspector{store: graphStore, log: logger}
}

// Describe takes a normalized schema snapshot from the store.
// For an unchanged schema the rendered output is byte-identical across calls.
func (i *Introspector) Describe(ctx context.Context) (*model.SchemaDescriptor, error) {
	descriptor, err := i.store.DescribeSchema(ctx)
	if err != nil {
		return nil, err
	}

	descriptor.Normalize()
	if err := descriptor.Validate(); err != nil {
		return nil, err
	}

	i.log.Debug("Schema snapshot taken",
		slog.Int("nodes", len(descriptor.Nodes)),
		slog.Int("relationships", len(descriptor.Relationships)),
	)

	return descriptor, nil
}
