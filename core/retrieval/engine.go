package retrieval

import (
	"context"
	"errors"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/kuzudb/graph-rag/core/schema"
	"github.com/kuzudb/graph-rag/core/translate"
	"github.com/kuzudb/graph-rag/model"
)

// Engine orchestrates one retrieval run: the graph branch (schema snapshot,
// translation, execution, deduplication) and the vector branch (embedding,
// similarity search) run concurrently, their candidates are fused, and the
// answer is synthesized from the fused context.
type Engine struct {
	introspector *schema.Introspector
	translator   *translate.Translator
	collector    *Collector
	vector       *VectorRetriever
	fuser        *Fuser
	synthesizer  *Synthesizer
	log          *slog.Logger
}

// NewEngine creates an engine from its components.
func NewEngine(
	introspector *schema.Introspector,
	translator *translate.Translator,
	collector *Collector,
	vector *VectorRetriever,
	fuser *Fuser,
	synthesizer *Synthesizer,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		introspector: introspector,
		translator:   translator,
		collector:    collector,
		vector:       vector,
		fuser:        fuser,
		synthesizer:  synthesizer,
		log:          logger,
	}
}

// GraphRetrieve runs the graph branch: snapshot the schema, translate the
// question to Cypher, execute it, and deduplicate the result values.
func (e *Engine) GraphRetrieve(ctx context.Context, question string, config *model.QueryConfig) (model.DedupedResult, error) {
	var descriptor *model.SchemaDescriptor
	err := e.withRetry(ctx, config, func(callCtx context.Context) error {
		var err error
		descriptor, err = e.introspector.Describe(callCtx)
		return err
	})
	if err != nil {
		return nil, err
	}

	var query *model.StructuredQuery
	err = e.withRetry(ctx, config, func(callCtx context.Context) error {
		var err error
		query, err = e.translator.Translate(callCtx, question, descriptor, config)
		return err
	})
	if err != nil {
		return nil, err
	}

	var result model.DedupedResult
	err = e.withRetry(ctx, config, func(callCtx context.Context) error {
		var err error
		result, err = e.collector.Execute(callCtx, query)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// VectorRetrieve runs the vector branch: embed the question and search the
// vector store for the top-K most similar chunks.
func (e *Engine) VectorRetrieve(ctx context.Context, question string, config *model.QueryConfig) ([]model.Chunk, error) {
	var chunks []model.Chunk
	err := e.withRetry(ctx, config, func(callCtx context.Context) error {
		var err error
		chunks, err = e.vector.Retrieve(callCtx, question, config.TopK)
		return err
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// Retrieve runs both branches concurrently, fuses their candidates and
// synthesizes the answer. A single failed branch degrades to the other
// branch's context; when both fail the run fails with RETRIEVAL_UNAVAILABLE
// and no generation call is made.
func (e *Engine) Retrieve(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	if config == nil {
		config = model.DefaultQueryConfig()
	}

	var (
		graphResult model.DedupedResult
		graphErr    error
		chunks      []model.Chunk
		vectorErr   error
	)

	// Branch errors are captured, not returned: returning one would cancel
	// the sibling branch through the group context.
	g, groupCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		graphResult, graphErr = e.GraphRetrieve(groupCtx, question, config)
		return nil
	})
	g.Go(func() error {
		chunks, vectorErr = e.VectorRetrieve(groupCtx, question, config)
		return nil
	})
	_ = g.Wait()

	if graphErr != nil && vectorErr != nil {
		return nil, model.WrapRAGError(
			model.ErrCodeRetrievalUnavailable,
			"both retrieval branches failed",
			errors.Join(graphErr, vectorErr),
		)
	}
	if graphErr != nil {
		e.log.Warn("Graph branch failed, answering from vector context only", slog.Any("error", graphErr))
	}
	if vectorErr != nil {
		e.log.Warn("Vector branch failed, answering from graph context only", slog.Any("error", vectorErr))
	}

	candidates := AssembleCandidates(question, graphResult, graphErr == nil, chunks)
	fused := e.fuser.Fuse(ctx, question, candidates, config.TopN)

	return e.synthesize(ctx, question, fused, config)
}

// RetrieveGraphOnly answers from the graph branch alone.
func (e *Engine) RetrieveGraphOnly(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	if config == nil {
		config = model.DefaultQueryConfig()
	}

	result, err := e.GraphRetrieve(ctx, question, config)
	if err != nil {
		return nil, err
	}

	fused := model.FusedContext{{
		Text:       result.Render(question),
		Provenance: model.ProvenanceGraph,
		Score:      1,
	}}

	return e.synthesize(ctx, question, fused, config)
}

// RetrieveVectorOnly answers from the vector branch alone, without reranking.
func (e *Engine) RetrieveVectorOnly(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	if config == nil {
		config = model.DefaultQueryConfig()
	}

	chunks, err := e.VectorRetrieve(ctx, question, config)
	if err != nil {
		return nil, err
	}

	fused := make(model.FusedContext, 0, len(chunks))
	for _, chunk := range chunks {
		fused = append(fused, model.Candidate{
			Text:       chunk.Text,
			Provenance: model.ProvenanceVector,
			Score:      chunk.Score,
		})
	}

	return e.synthesize(ctx, question, fused, config)
}

func (e *Engine) synthesize(ctx context.Context, question string, fused model.FusedContext, config *model.QueryConfig) (*model.Answer, error) {
	var answer *model.Answer
	err := e.withRetry(ctx, config, func(callCtx context.Context) error {
		var err error
		answer, err = e.synthesizer.Synthesize(callCtx, question, fused, config)
		return err
	})
	if err != nil {
		return nil, err
	}
	return answer, nil
}

// AssembleCandidates builds the fusion input: the graph branch's values as
// one composite candidate first (when the branch succeeded), then the vector
// chunks in delivered order.
func AssembleCandidates(question string, graph model.DedupedResult, graphOK bool, chunks []model.Chunk) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(chunks)+1)
	if graphOK {
		candidates = append(candidates, model.Candidate{
			Text:       graph.Render(question),
			Provenance: model.ProvenanceGraph,
			Score:      1,
		})
	}
	for _, chunk := range chunks {
		candidates = append(candidates, model.Candidate{
			Text:       chunk.Text,
			Provenance: model.ProvenanceVector,
			Score:      chunk.Score,
		})
	}
	return candidates
}

// withRetry runs one network call under the per-call timeout, retrying
// retryable failures with bounded exponential backoff. Non-retryable errors
// and context cancellation stop immediately.
func (e *Engine) withRetry(ctx context.Context, config *model.QueryConfig, call func(ctx context.Context) error) error {
	attempt := func() error {
		callCtx := ctx
		if config.CallTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, config.CallTimeout)
			defer cancel()
		}

		err := call(callCtx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if !model.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(config.MaxRetries)), ctx)
	return backoff.Retry(attempt, policy)
}
