package llm

import "context"

// GenerateOptions control a single generation call.
type GenerateOptions struct {
	// Temperature controls sampling randomness.
	Temperature float64
	// Seed pins sampling for reproducible output on backends that support it.
	Seed int
	// Model overrides the generator's default model when non-empty.
	Model string
}

// Generator produces text completions from a system and user prompt pair.
type Generator interface {
	Generate(ctx context.Context, system string, prompt string, opts GenerateOptions) (string, error)
}

// EmbedFunc generates an embedding vector for a text.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)
