package retrieval

import (
	"context"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/kuzudb/graph-rag/model"
)

// CohereReranker scores candidates with the Cohere rerank API.
type CohereReranker struct {
	client *cohereclient.Client
	model  string
}

// NewCohereReranker creates a reranker for the given model,
// e.g. rerank-english-v3.0.
func NewCohereReranker(apiKey string, modelName string) (*CohereReranker, error) {
	if apiKey == "" {
		return nil, model.NewRAGError(model.ErrCodeInvalidConfig, "Cohere API key is required")
	}

	return &CohereReranker{
		client: cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		model:  modelName,
	}, nil
}

// Rerank submits the documents and returns the topN by relevance,
// highest score first.
func (r *CohereReranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]RankedDocument, error) {
	items := make([]*cohere.RerankRequestDocumentsItem, len(documents))
	for i, doc := range documents {
		items[i] = &cohere.RerankRequestDocumentsItem{String: doc}
	}

	resp, err := r.client.Rerank(ctx, &cohere.RerankRequest{
		Model:     cohere.String(r.model),
		Query:     query,
		Documents: items,
		TopN:      cohere.Int(topN),
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, model.WrapRetryableRAGError(model.ErrCodeTimeout, "reranking timed out", err)
		}
		return nil, model.WrapRetryableRAGError(model.ErrCodeGenerationFailed, "reranking failed", err)
	}

	ranked := make([]RankedDocument, 0, len(resp.Results))
	for _, result := range resp.Results {
		ranked = append(ranked, RankedDocument{
			Index: result.Index,
			Score: result.RelevanceScore,
		})
	}

	return ranked, nil
}

var _ Reranker = (*CohereReranker)(nil)
