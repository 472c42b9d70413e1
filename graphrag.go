package graphrag

import (
	"context"
	"log/slog"
	"os"

	"github.com/kuzudb/graph-rag/core/llm"
	"github.com/kuzudb/graph-rag/core/retrieval"
	"github.com/kuzudb/graph-rag/core/schema"
	"github.com/kuzudb/graph-rag/core/translate"
	"github.com/kuzudb/graph-rag/helper"
	"github.com/kuzudb/graph-rag/model"
	"github.com/kuzudb/graph-rag/store"
)

// GraphRAG provides hybrid retrieval-augmented generation over a graph store
// and a vector store.
type GraphRAG struct {
	Graph  store.GraphStore
	Vector store.VectorStore
	Engine *retrieval.Engine
	// Logging
	log *slog.Logger
}

// New creates a GraphRAG instance from the full configuration: it connects
// both stores, builds the configured generation and embedding backends and
// wires the retrieval engine. Credentials are validated eagerly, so a
// misconfigured backend fails here and not on the first question.
func New(ctx context.Context, config *helper.Configuration) (*GraphRAG, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Graph store
	graphStore, err := store.NewNeo4jStore(store.Neo4jConfig{
		URI:                   config.Graph.URI,
		Username:              config.Graph.Username,
		Password:              config.Graph.Password,
		Database:              config.Graph.Database,
		MaxConnectionPoolSize: store.DefaultNeo4jConfig().MaxConnectionPoolSize,
		ConnectionTimeout:     store.DefaultNeo4jConfig().ConnectionTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}
	if err := graphStore.Connect(ctx); err != nil {
		return nil, err
	}

	// Vector store
	db, err := helper.NewDatabase("graphrag", config.Vector, logger)
	if err != nil {
		_ = graphStore.Close(ctx)
		return nil, helper.NewError("connect vector database", err)
	}
	vectorStore, err := store.NewPGVectorStore(db, config.EmbeddingDim, false)
	if err != nil {
		_ = graphStore.Close(ctx)
		_ = db.Instance.Close()
		return nil, helper.NewError("create vector store", err)
	}

	closeStores := func() {
		_ = graphStore.Close(ctx)
		_ = vectorStore.Close(ctx)
	}

	// LLM backends
	generator, err := llm.NewGeneratorFromConfig(config)
	if err != nil {
		closeStores()
		return nil, err
	}
	embedder, err := llm.NewEmbedderFromConfig(config)
	if err != nil {
		closeStores()
		return nil, err
	}

	// Reranking is optional: without a key the fuser keeps the assembled order
	var reranker retrieval.Reranker
	if config.CohereAPIKey != "" {
		reranker, err = retrieval.NewCohereReranker(config.CohereAPIKey, config.RerankModel)
		if err != nil {
			closeStores()
			return nil, err
		}
	}

	return NewWithComponents(graphStore, vectorStore, generator, embedder, reranker, logger), nil
}

// NewWithComponents wires a GraphRAG instance from explicit components.
// Stores must already be connected. Useful for tests and custom backends.
func NewWithComponents(
	graphStore store.GraphStore,
	vectorStore store.VectorStore,
	generator llm.Generator,
	embedder llm.EmbedFunc,
	reranker retrieval.Reranker,
	logger *slog.Logger,
) *GraphRAG {
	engine := retrieval.NewEngine(
		schema.NewIntrospector(graphStore, logger),
		translate.NewTranslator(generator, logger),
		retrieval.NewCollector(graphStore, logger),
		retrieval.NewVectorRetriever(embedder, vectorStore, logger),
		retrieval.NewFuser(reranker, logger),
		retrieval.NewSynthesizer(generator, logger),
		logger,
	)

	return &GraphRAG{
		Graph:  graphStore,
		Vector: vectorStore,
		Engine: engine,
		log:    logger,
	}
}

// RunHybrid answers a question from both retrieval branches.
// A nil config uses the defaults.
func (g *GraphRAG) RunHybrid(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	strategy := retrieval.NewHybridStrategy(g.Engine)
	return strategy.Retrieve(ctx, question, config)
}

// RunGraphOnly answers a question from the graph branch alone.
func (g *GraphRAG) RunGraphOnly(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	strategy := retrieval.NewGraphOnlyStrategy(g.Engine)
	return strategy.Retrieve(ctx, question, config)
}

// RunVectorOnly answers a question from vector similarity alone.
func (g *GraphRAG) RunVectorOnly(ctx context.Context, question string, config *model.QueryConfig) (*model.Answer, error) {
	strategy := retrieval.NewVectorOnlyStrategy(g.Engine)
	return strategy.Retrieve(ctx, question, config)
}

// Close closes both stores.
func (g *GraphRAG) Close(ctx context.Context) error {
	var firstErr error
	if g.Graph != nil {
		if err := g.Graph.Close(ctx); err != nil {
			firstErr = err
		}
	}
	if g.Vector != nil {
		if err := g.Vector.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
