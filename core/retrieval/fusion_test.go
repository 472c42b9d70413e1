package retrieval

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuzudb/graph-rag/model"
)

// mockReranker returns scripted rankings or an error.
type mockReranker struct {
	ranked []RankedDocument
	err    error
	calls  int
}

func (m *mockReranker) Rerank(ctx context.Context, query string, documents []string, topN int) ([]RankedDocument, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.ranked, nil
}

func testCandidates() []model.Candidate {
	return []model.Candidate{
		{Text: "{q: [graph values]}", Provenance: model.ProvenanceGraph, Score: 1},
		{Text: "first chunk", Provenance: model.ProvenanceVector, Score: 0.9},
		{Text: "second chunk", Provenance: model.ProvenanceVector, Score: 0.8},
	}
}

func TestFuserFuse(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	ctx := context.Background()

	t.Run("Nil reranker keeps assembled order", func(t *testing.T) {
		fuser := NewFuser(nil, logger)

		fused := fuser.Fuse(ctx, "q", testCandidates(), 20)

		require.Len(t, fused, 3)
		assert.Equal(t, model.ProvenanceGraph, fused[0].Provenance)
		assert.Equal(t, "first chunk", fused[1].Text)
		assert.Equal(t, "second chunk", fused[2].Text)
	})

	t.Run("Reranker reorders by score", func(t *testing.T) {
		reranker := &mockReranker{ranked: []RankedDocument{
			{Index: 2, Score: 0.99},
			{Index: 0, Score: 0.5},
			{Index: 1, Score: 0.1},
		}}
		fuser := NewFuser(reranker, logger)

		fused := fuser.Fuse(ctx, "q", testCandidates(), 20)

		require.Len(t, fused, 3)
		assert.Equal(t, "second chunk", fused[0].Text)
		assert.Equal(t, 0.99, fused[0].Score)
		assert.Equal(t, model.ProvenanceGraph, fused[1].Provenance)
		assert.Equal(t, "first chunk", fused[2].Text)
	})

	t.Run("Scores are non-increasing", func(t *testing.T) {
		reranker := &mockReranker{ranked: []RankedDocument{
			{Index: 1, Score: 0.2},
			{Index: 0, Score: 0.7},
		}}
		fuser := NewFuser(reranker, logger)

		fused := fuser.Fuse(ctx, "q", testCandidates(), 20)

		for i := 1; i < len(fused); i++ {
			assert.LessOrEqual(t, fused[i].Score, fused[i-1].Score)
		}
	})

	t.Run("Truncates to topN", func(t *testing.T) {
		fuser := NewFuser(nil, logger)

		fused := fuser.Fuse(ctx, "q", testCandidates(), 2)

		require.Len(t, fused, 2)
		assert.Equal(t, model.ProvenanceGraph, fused[0].Provenance)
	})

	t.Run("Equal scores keep assembled order", func(t *testing.T) {
		reranker := &mockReranker{ranked: []RankedDocument{
			{Index: 1, Score: 0.5},
			{Index: 0, Score: 0.5},
			{Index: 2, Score: 0.5},
		}}
		fuser := NewFuser(reranker, logger)

		fused := fuser.Fuse(ctx, "q", testCandidates(), 20)

		require.Len(t, fused, 3)
		assert.Equal(t, model.ProvenanceGraph, fused[0].Provenance)
		assert.Equal(t, "first chunk", fused[1].Text)
		assert.Equal(t, "second chunk", fused[2].Text)
	})

	t.Run("Reranker failure falls back to assembled order", func(t *testing.T) {
		reranker := &mockReranker{err: errors.New("429 rate limited")}
		fuser := NewFuser(reranker, logger)

		fused := fuser.Fuse(ctx, "q", testCandidates(), 20)

		require.Len(t, fused, 3)
		assert.Equal(t, model.ProvenanceGraph, fused[0].Provenance)
		assert.Equal(t, 1, reranker.calls)
	})

	t.Run("Out-of-range indices are skipped", func(t *testing.T) {
		reranker := &mockReranker{ranked: []RankedDocument{
			{Index: 7, Score: 0.9},
			{Index: 1, Score: 0.5},
		}}
		fuser := NewFuser(reranker, logger)

		fused := fuser.Fuse(ctx, "q", testCandidates(), 20)

		require.Len(t, fused, 1)
		assert.Equal(t, "first chunk", fused[0].Text)
	})

	t.Run("No candidates yields empty context", func(t *testing.T) {
		reranker := &mockReranker{}
		fuser := NewFuser(reranker, logger)

		fused := fuser.Fuse(ctx, "q", nil, 20)

		assert.Empty(t, fused)
		assert.Zero(t, reranker.calls, "reranker should not be called without candidates")
	})
}

func TestAssembleCandidates(t *testing.T) {
	chunks := []model.Chunk{
		{Text: "first chunk", Score: 0.9},
		{Text: "second chunk", Score: 0.8},
	}

	t.Run("Graph candidate comes first", func(t *testing.T) {
		graph := model.DedupedResult{"Jonathan Nolan"}
		candidates := AssembleCandidates("Who wrote it?", graph, true, chunks)

		require.Len(t, candidates, 3)
		assert.Equal(t, model.ProvenanceGraph, candidates[0].Provenance)
		assert.Equal(t, "{Who wrote it?: [Jonathan Nolan]}", candidates[0].Text)
		assert.Equal(t, model.ProvenanceVector, candidates[1].Provenance)
	})

	t.Run("Failed graph branch contributes nothing", func(t *testing.T) {
		candidates := AssembleCandidates("q", nil, false, chunks)

		require.Len(t, candidates, 2)
		assert.Equal(t, model.ProvenanceVector, candidates[0].Provenance)
	})

	t.Run("Empty graph result still appears when the branch succeeded", func(t *testing.T) {
		candidates := AssembleCandidates("q", model.DedupedResult{}, true, nil)

		require.Len(t, candidates, 1)
		assert.Equal(t, "{q: []}", candidates[0].Text)
	})
}
