package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/kuzudb/graph-rag/core/llm"
	"github.com/kuzudb/graph-rag/model"
)

const (
	defaultCacheTTL     = 15 * time.Minute
	defaultCacheCleanup = 30 * time.Minute
)

// Translator turns natural language questions into Cypher statements using an
// LLM, with a TTL cache keyed on the question and schema so repeated questions
// against an unchanged schema skip the model call.
type Translator struct {
	generator llm.Generator
	cache     *cache.Cache
	log       *slog.Logger
}

// NewTranslator creates a translator with the default cache TTL.
func NewTranslator(generator llm.Generator, logger *slog.Logger) *Translator {
	return &Translator{
		generator: generator,
		cache:     cache.New(defaultCacheTTL, defaultCacheCleanup),
		log:       logger,
	}
}

// Translate generates a Cypher statement answering the question against the
// given schema. The returned query is sanitized and validated; a statement the
// model wrapped in markdown fences is unwrapped before validation.
func (t *Translator) Translate(ctx context.Context, question string, descriptor *model.SchemaDescriptor, config *model.QueryConfig) (*model.StructuredQuery, error) {
	schemaText := descriptor.Render()
	key := cacheKey(question, schemaText)

	if cached, found := t.cache.Get(key); found {
		query := cached.(*model.StructuredQuery)
		t.log.Debug("Translation cache hit", slog.String("question", question))
		return query, nil
	}

	raw, err := t.generator.Generate(ctx, cypherSystemPrompt, cypherUserPrompt(schemaText, question), llm.GenerateOptions{
		Temperature: config.TranslateTemperature,
		Seed:        config.Seed,
		Model:       config.GenerationModel,
	})
	if err != nil {
		return nil, err
	}

	query := &model.StructuredQuery{
		Cypher:   SanitizeCypher(raw),
		Question: question,
	}
	if err := query.Validate(); err != nil {
		return nil, model.WrapRAGError(model.ErrCodeQuerySyntax, "model produced an unusable statement", err)
	}

	t.cache.Set(key, query, cache.DefaultExpiration)
	t.log.Debug("Translated question", slog.String("cypher", query.Cypher))

	return query, nil
}

// SanitizeCypher strips markdown code fences and surrounding whitespace from
// a model response. Every fence marker is removed, wherever it appears; an
// optional language tag after an opening fence is removed as well.
func SanitizeCypher(raw string) string {
	text := strings.TrimSpace(raw)

	fenced := strings.HasPrefix(text, "```")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)
	if fenced {
		if rest, ok := strings.CutPrefix(text, "cypher"); ok {
			text = strings.TrimSpace(rest)
		}
	}

	return strings.TrimSpace(text)
}

func cacheKey(question string, schemaText string) string {
	sum := sha256.Sum256([]byte(question + "\x00" + schemaText))
	return hex.EncodeToString(sum[:])
}
