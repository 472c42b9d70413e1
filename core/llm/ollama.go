package llm

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/kuzudb/graph-rag/model"
)

// OllamaGenerator generates completions via a local Ollama server.
type OllamaGenerator struct {
	llm *ollama.LLM
}

// NewOllamaGenerator creates a generator talking to the given server.
// An empty serverURL uses the Ollama default (http://localhost:11434).
func NewOllamaGenerator(serverURL string, modelName string) (*OllamaGenerator, error) {
	opts := []ollama.Option{ollama.WithModel(modelName)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, model.WrapRAGError(model.ErrCodeInvalidConfig, "create Ollama client", err)
	}

	return &OllamaGenerator{llm: client}, nil
}

// Generate runs a chat completion with the system and user prompts.
func (g *OllamaGenerator) Generate(ctx context.Context, system string, prompt string, opts GenerateOptions) (string, error) {
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

var _ Generator = (*OllamaGenerator)(nil)
