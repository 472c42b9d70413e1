package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/kuzudb/graph-rag/model"
)

// OpenAIGenerator generates completions via the OpenAI chat API.
type OpenAIGenerator struct {
	llm   *openai.LLM
	model string
}

// NewOpenAIGenerator creates a generator for the given model.
func NewOpenAIGenerator(apiKey string, modelName string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, model.NewRAGError(model.ErrCodeInvalidConfig, "OpenAI API key is required")
	}

	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	)
	if err != nil {
		return nil, model.WrapRAGError(model.ErrCodeInvalidConfig, "create OpenAI client", err)
	}

	return &OpenAIGenerator{llm: client, model: modelName}, nil
}

// Generate runs a chat completion with the system and user prompts.
func (g *OpenAIGenerator) Generate(ctx context.Context, system string, prompt string, opts GenerateOptions) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	callOpts := []llms.CallOption{
		llms.WithTemperature(opts.Temperature),
		llms.WithSeed(opts.Seed),
	}
	if opts.Model != "" {
		callOpts = append(callOpts, llms.WithModel(opts.Model))
	}

	resp, err := g.llm.GenerateContent(ctx, messages, callOpts...)
	if err != nil {
		return "", classifyGenerationError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return "", model.NewRAGError(model.ErrCodeGenerationFailed, "model returned no choices")
	}

	return resp.Choices[0].Content, nil
}

// NewOpenAIEmbedder returns an EmbedFunc backed by the OpenAI embeddings API.
func NewOpenAIEmbedder(apiKey string, modelName string) (EmbedFunc, error) {
	if apiKey == "" {
		return nil, model.NewRAGError(model.ErrCodeInvalidConfig, "OpenAI API key is required")
	}

	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(modelName),
	)
	if err != nil {
		return nil, model.WrapRAGError(model.ErrCodeInvalidConfig, "create OpenAI client", err)
	}

	return func(ctx context.Context, text string) ([]float32, error) {
		embeddings, err := client.CreateEmbedding(ctx, []string{text})
		if err != nil {
			return nil, classifyEmbeddingError(ctx, err)
		}
		if len(embeddings) == 0 {
			return nil, model.NewRAGError(model.ErrCodeEmbeddingFailed, "no embedding returned")
		}
		return embeddings[0], nil
	}, nil
}

// Only timeouts are retryable; any other backend failure is final so a broken
// generation backend fails the run after a single call.
func classifyGenerationError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return model.WrapRetryableRAGError(model.ErrCodeTimeout, "generation timed out", err)
	}
	return model.WrapRAGError(model.ErrCodeGenerationFailed, "generation failed", err)
}

func classifyEmbeddingError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return model.WrapRetryableRAGError(model.ErrCodeTimeout, "embedding timed out", err)
	}
	return model.WrapRAGError(model.ErrCodeEmbeddingFailed, "embedding failed", err)
}

var _ Generator = (*OpenAIGenerator)(nil)
