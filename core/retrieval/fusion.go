package retrieval

import (
	"context"
	"log/slog"
	"sort"

	"github.com/kuzudb/graph-rag/model"
)

// RankedDocument is one reranker verdict: the index of the document in the
// submitted list and its relevance score.
type RankedDocument struct {
	Index int
	Score float64
}

// Reranker scores documents by relevance to a query and returns the best
// topN, highest score first.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]RankedDocument, error)
}

// Fuser merges graph and vector candidates into a single ranked context.
// With a reranker the candidates are reordered by its scores; without one, or
// when reranking fails, the assembled order is kept as a deterministic
// fallback. Fusion never fails a run that has candidates.
type Fuser struct {
	reranker Reranker
	log      *slog.Logger
}

// NewFuser creates a fuser. A nil reranker selects the fallback ordering.
func NewFuser(reranker Reranker, logger *slog.Logger) *Fuser {
	return &Fuser{reranker: reranker, log: logger}
}

// Fuse ranks the candidates against the question and truncates to topN.
// Candidates are expected in assembled order: the graph candidate, if any,
// first, then vector chunks by descending similarity. Ties in score preserve
// that order.
func (f *Fuser) Fuse(ctx context.Context, question string, candidates []model.Candidate, topN int) model.FusedContext {
	if len(candidates) == 0 {
		return model.FusedContext{}
	}

	if f.reranker == nil {
		return truncate(candidates, topN)
	}

	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = c.Text
	}

	ranked, err := f.reranker.Rerank(ctx, question, documents, topN)
	if err != nil {
		f.log.Warn("Reranking failed, keeping assembled order", slog.Any("error", err))
		return truncate(candidates, topN)
	}

	type scoredCandidate struct {
		candidate model.Candidate
		origin    int
	}
	scored := make([]scoredCandidate, 0, len(ranked))
	for _, doc := range ranked {
		if doc.Index < 0 || doc.Index >= len(candidates) {
			continue
		}
		candidate := candidates[doc.Index]
		candidate.Score = doc.Score
		scored = append(scored, scoredCandidate{candidate: candidate, origin: doc.Index})
	}

	// Equal scores fall back to the assembled order, not the reranker's.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].candidate.Score != scored[j].candidate.Score {
			return scored[i].candidate.Score > scored[j].candidate.Score
		}
		return scored[i].origin < scored[j].origin
	})

	fused := make(model.FusedContext, 0, len(scored))
	for _, s := range scored {
		fused = append(fused, s.candidate)
	}

	return truncate(fused, topN)
}

func truncate(candidates []model.Candidate, topN int) model.FusedContext {
	if topN > 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return model.FusedContext(candidates)
}
