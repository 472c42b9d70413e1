package retrieval

import (
	"context"
	"log/slog"

	"github.com/kuzudb/graph-rag/core/llm"
	"github.com/kuzudb/graph-rag/model"
	"github.com/kuzudb/graph-rag/store"
)

// VectorRetriever embeds a question and searches the vector store for the
// most similar chunks.
type VectorRetriever struct {
	embedder llm.EmbedFunc
	store    store.VectorStore
	log      *slog.Logger
}

// NewVectorRetriever creates a retriever over the given embedder and store.
func NewVectorRetriever(embedder llm.EmbedFunc, vectorStore store.VectorStore, logger *slog.Logger) *VectorRetriever {
	return &VectorRetriever{
		embedder: embedder,
		store:    vectorStore,
		log:      logger,
	}
}

// Retrieve returns the top-K most similar chunks for the question, best
// first. An empty store yields an empty result, not an error.
func (r *VectorRetriever) Retrieve(ctx context.Context, question string, topK int) ([]model.Chunk, error) {
	embedding, err := r.embedder(ctx, question)
	if err != nil {
		return nil, err
	}

	chunks, err := r.store.Search(ctx, embedding, topK)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Vector retrieval complete",
		slog.String("question", question),
		slog.Int("chunks", len(chunks)),
	)

	return chunks, nil
}
