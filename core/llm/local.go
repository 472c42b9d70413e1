package llm

import (
	"context"
	"fmt"

	"github.com/knights-analytics/hugot"

	"github.com/kuzudb/graph-rag/helper"
	"github.com/kuzudb/graph-rag/model"
)

// DefaultLocalEmbedder creates an embedder using the all-MiniLM-L6-v2
// sentence transformer, which produces 384-dimensional embeddings. The model
// is downloaded on first use and runs fully locally.
func DefaultLocalEmbedder() (EmbedFunc, error) {
	return NewLocalEmbedder("sentence-transformers/all-MiniLM-L6-v2", "onnx/model.onnx")
}

// NewLocalEmbedder creates an embedder running the given ONNX sentence
// transformer through hugot's Go backend.
func NewLocalEmbedder(modelName string, onnxFilePath string) (EmbedFunc, error) {
	modelPath, err := helper.PrepareModel(modelName, onnxFilePath)
	if err != nil {
		return nil, model.WrapRAGError(model.ErrCodeInvalidConfig, "prepare embedding model", err)
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	return pipelineEmbedder(func(text string) ([]float32, error) {
		result, err := sentencePipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, model.WrapRAGError(model.ErrCodeEmbeddingFailed, "run embedding pipeline", err)
		}

		if len(result.Embeddings) == 0 {
			return nil, model.NewRAGError(model.ErrCodeEmbeddingFailed, "no embedding generated")
		}

		return result.Embeddings[0], nil
	}), nil
}

// pipelineEmbedder wraps a pipeline run in the EmbedFunc contract. The
// pipeline itself runs synchronously without a context, so cancellation is
// checked before each run.
func pipelineEmbedder(run func(text string) ([]float32, error)) EmbedFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		if err := ctx.Err(); err != nil {
			return nil, model.WrapRAGError(model.ErrCodeEmbeddingFailed, "embedding canceled", err)
		}
		return run(text)
	}
}
