package retrieval

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/kuzudb/graph-rag/model"
	"github.com/kuzudb/graph-rag/store"
)

// Collector executes structured queries and flattens the results into a
// distinct value sequence for context assembly.
type Collector struct {
	store store.GraphStore
	log   *slog.Logger
}

// NewCollector creates a collector over the given graph store.
func NewCollector(graphStore store.GraphStore, logger *slog.Logger) *Collector {
	return &Collector{store: graphStore, log: logger}
}

// Execute runs the query and returns its values, distinct and in first-seen
// order. An empty result is valid: the question simply has no graph answer.
func (c *Collector) Execute(ctx context.Context, query *model.StructuredQuery) (model.DedupedResult, error) {
	result, err := c.store.Execute(ctx, query.Cypher)
	if err != nil {
		return nil, err
	}

	values := CollectDistinct(result.Rows)
	c.log.Debug("Graph query collected",
		slog.String("cypher", query.Cypher),
		slog.Int("values", len(values)),
	)

	return model.DedupedResult(values), nil
}

// CollectDistinct flattens query result rows into a single value sequence and
// removes structural duplicates, keeping the first occurrence of each value.
// Row and column order is preserved, so the output is deterministic for a
// fixed input.
//
// Equality is structural: two maps or slices with equal contents are
// duplicates even though they are distinct allocations. The working set is
// scanned linearly per value, which is fine at retrieval result sizes.
func CollectDistinct(rows [][]any) []any {
	var out []any
	for _, row := range rows {
		for _, value := range row {
			if !containsValue(out, value) {
				out = append(out, value)
			}
		}
	}
	return out
}

func containsValue(values []any, value any) bool {
	for _, existing := range values {
		if reflect.DeepEqual(existing, value) {
			return true
		}
	}
	return false
}
