package llm

import (
	"fmt"
	"strings"

	"github.com/kuzudb/graph-rag/helper"
	"github.com/kuzudb/graph-rag/model"
)

// NewGeneratorFromConfig builds the generator named by the configuration's
// generation backend.
func NewGeneratorFromConfig(config *helper.Configuration) (Generator, error) {
	switch config.GenerationBackend {
	case "openai":
		return NewOpenAIGenerator(config.OpenAIAPIKey, config.GenerationModel)
	case "ollama":
		return NewOllamaGenerator(config.OllamaServerURL, config.GenerationModel)
	default:
		return nil, model.NewRAGError(model.ErrCodeInvalidConfig, fmt.Sprintf("unknown generation backend %q", config.GenerationBackend))
	}
}

// NewEmbedderFromConfig builds the embedder named by the configuration's
// embedding backend.
func NewEmbedderFromConfig(config *helper.Configuration) (EmbedFunc, error) {
	switch config.EmbeddingBackend {
	case "openai":
		return NewOpenAIEmbedder(config.OpenAIAPIKey, config.EmbeddingModel)
	case "local":
		// Hub model names are org/name; anything else is an API model name
		// left at its default, so use the default local model instead.
		if strings.Contains(config.EmbeddingModel, "/") {
			return NewLocalEmbedder(config.EmbeddingModel, "onnx/model.onnx")
		}
		return DefaultLocalEmbedder()
	default:
		return nil, model.NewRAGError(model.ErrCodeInvalidConfig, fmt.Sprintf("unknown embedding backend %q", config.EmbeddingBackend))
	}
}
