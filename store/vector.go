package store

import (
	"context"

	"github.com/kuzudb/graph-rag/model"
)

// VectorStore is the embedding side of retrieval. Search is cosine-metric
// nearest-neighbor over precomputed embeddings; results come back ordered by
// descending similarity with the score carried through. Zero results is valid.
type VectorStore interface {
	Search(ctx context.Context, embedding []float32, limit int) ([]model.Chunk, error)
	Close(ctx context.Context) error
}
