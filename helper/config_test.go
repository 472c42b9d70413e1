package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setGraphEnvs(t *testing.T) {
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("NEO4J_USERNAME", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "password")
}

func TestNewDatabaseConfiguration(t *testing.T) {
	t.Run("Valid configuration from envs", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")

		config, err := NewDatabaseConfiguration()

		require.NoError(t, err)
		assert.Equal(t, "localhost", config.Host)
		assert.Equal(t, "5432", config.Port)
		assert.Equal(t, "public", config.Schema)
		assert.Equal(t, "disable", config.SSLMode)
	})

	t.Run("Missing required envs", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_PASSWORD", "")

		_, err := NewDatabaseConfiguration()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_HOST")
		assert.Contains(t, err.Error(), "DB_PASSWORD")
	})
}

func TestNewGraphConfiguration(t *testing.T) {
	t.Run("Valid configuration from envs", func(t *testing.T) {
		setGraphEnvs(t)
		t.Setenv("NEO4J_DATABASE", "movies")

		config, err := NewGraphConfiguration()

		require.NoError(t, err)
		assert.Equal(t, "bolt://localhost:7687", config.URI)
		assert.Equal(t, "movies", config.Database)
	})

	t.Run("Missing URI", func(t *testing.T) {
		setGraphEnvs(t)
		t.Setenv("NEO4J_URI", "")

		_, err := NewGraphConfiguration()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "NEO4J_URI")
	})
}

func TestNewConfiguration(t *testing.T) {
	t.Run("Defaults with openai backends", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		setGraphEnvs(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")

		config, err := NewConfiguration()

		require.NoError(t, err)
		assert.Equal(t, "openai", config.GenerationBackend)
		assert.Equal(t, "gpt-4o-mini", config.GenerationModel)
		assert.Equal(t, "text-embedding-3-small", config.EmbeddingModel)
		assert.Equal(t, 1536, config.EmbeddingDim)
		assert.Equal(t, "rerank-english-v3.0", config.RerankModel)
	})

	t.Run("Missing OpenAI key fails eagerly", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		setGraphEnvs(t)
		t.Setenv("OPENAI_API_KEY", "")

		_, err := NewConfiguration()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	})

	t.Run("Ollama generation with local embeddings needs no keys", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		setGraphEnvs(t)
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("GENERATION_BACKEND", "ollama")
		t.Setenv("EMBEDDING_BACKEND", "local")
		t.Setenv("EMBEDDING_DIM", "384")

		config, err := NewConfiguration()

		require.NoError(t, err)
		assert.Equal(t, "ollama", config.GenerationBackend)
		assert.Equal(t, 384, config.EmbeddingDim)
	})

	t.Run("Unknown generation backend fails", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		setGraphEnvs(t)
		t.Setenv("GENERATION_BACKEND", "parrot")

		_, err := NewConfiguration()

		assert.Error(t, err)
	})

	t.Run("Invalid embedding dimension fails", func(t *testing.T) {
		SetTestDatabaseConfigEnvs(t, "5432")
		setGraphEnvs(t)
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("EMBEDDING_DIM", "many")

		_, err := NewConfiguration()

		assert.Error(t, err)
	})
}
