package retrieval

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kuzudb/graph-rag/core/llm"
	"github.com/kuzudb/graph-rag/model"
)

// ragSystemPrompt grounds the model in the retrieved context only.
const ragSystemPrompt = `You are an AI assistant using Retrieval-Augmented Generation (RAG).
RAG enhances your responses by retrieving relevant information from a knowledge base.
You will be provided with a question and relevant context. Use only this context to answer the question.
Do not make up an answer. If you don't know the answer, say so clearly.
Always strive to provide concise, helpful, and context-aware answers.`

const ragUserPromptFormat = `Given the following question and relevant context, please provide a comprehensive and accurate response:

Instructions:
Use ALL the information provided in the context to answer the question.
For numerical answers, please provide the exact number - do not guess or estimate.

Question: %s

Relevant context:
%s

Response:`

// Synthesizer generates the final answer from the fused context.
type Synthesizer struct {
	generator llm.Generator
	log       *slog.Logger
}

// NewSynthesizer creates a synthesizer over the given generator.
func NewSynthesizer(generator llm.Generator, logger *slog.Logger) *Synthesizer {
	return &Synthesizer{generator: generator, log: logger}
}

// Synthesize answers the question from the fused context. The context may be
// empty; the grounding prompt then makes the model say it does not know.
func (s *Synthesizer) Synthesize(ctx context.Context, question string, fused model.FusedContext, config *model.QueryConfig) (*model.Answer, error) {
	prompt := fmt.Sprintf(ragUserPromptFormat, question, fused.Render())

	text, err := s.generator.Generate(ctx, ragSystemPrompt, prompt, llm.GenerateOptions{
		Temperature: config.Temperature,
		Seed:        config.Seed,
		Model:       config.GenerationModel,
	})
	if err != nil {
		return nil, err
	}

	answer := model.NewAnswer(question, text)
	s.log.Debug("Answer synthesized", slog.String("id", answer.ID.String()))

	return answer, nil
}
