package retrieval

import (
	"context"

	"github.com/kuzudb/graph-rag/model"
)

// Strategy defines a retrieval strategy
type Strategy interface {
	Retrieve(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error)
}

// HybridStrategy runs graph and vector retrieval concurrently and fuses
// their results before synthesis.
type HybridStrategy struct {
	engine *Engine
}

// NewHybridStrategy creates a new hybrid strategy
func NewHybridStrategy(engine *Engine) *HybridStrategy {
	return &HybridStrategy{engine: engine}
}

// Retrieve performs hybrid retrieval
func (s *HybridStrategy) Retrieve(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	return s.engine.Retrieve(ctx, question, config)
}

// GraphOnlyStrategy answers from the graph branch alone: schema snapshot,
// translation, execution, deduplication, synthesis.
type GraphOnlyStrategy struct {
	engine *Engine
}

// NewGraphOnlyStrategy creates a new graph-only strategy
func NewGraphOnlyStrategy(engine *Engine) *GraphOnlyStrategy {
	return &GraphOnlyStrategy{engine: engine}
}

// Retrieve performs graph-only retrieval
func (s *GraphOnlyStrategy) Retrieve(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	return s.engine.RetrieveGraphOnly(ctx, question, config)
}

// VectorOnlyStrategy answers from vector similarity search alone.
type VectorOnlyStrategy struct {
	engine *Engine
}

// NewVectorOnlyStrategy creates a new vector-only strategy
func NewVectorOnlyStrategy(engine *Engine) *VectorOnlyStrategy {
	return &VectorOnlyStrategy{engine: engine}
}

// Retrieve performs vector-only retrieval
func (s *VectorOnlyStrategy) Retrieve(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	return s.engine.RetrieveVectorOnly(ctx, question, config)
}
