package helper

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfiguration holds the PostgreSQL connection settings for the vector store
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the database configuration from environment
// variables. All of DB_HOST, DB_PORT, DB_DATABASE, DB_USERNAME and DB_PASSWORD
// are required; DB_SCHEMA defaults to public and DB_SSLMODE to disable.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	config := &DatabaseConfiguration{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		Database: os.Getenv("DB_DATABASE"),
		Username: os.Getenv("DB_USERNAME"),
		Password: os.Getenv("DB_PASSWORD"),
		Schema:   os.Getenv("DB_SCHEMA"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	var missing []string
	if config.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if config.Port == "" {
		missing = append(missing, "DB_PORT")
	}
	if config.Database == "" {
		missing = append(missing, "DB_DATABASE")
	}
	if config.Username == "" {
		missing = append(missing, "DB_USERNAME")
	}
	if config.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, NewError("read database configuration", fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", ")))
	}

	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// GraphConfiguration holds the Neo4j connection settings for the graph store
type GraphConfiguration struct {
	URI      string
	Username string
	Password string
	Database string
}

// NewGraphConfiguration reads the graph store configuration from environment
// variables. NEO4J_URI, NEO4J_USERNAME and NEO4J_PASSWORD are required;
// NEO4J_DATABASE is optional (empty selects the server default).
func NewGraphConfiguration() (*GraphConfiguration, error) {
	config := &GraphConfiguration{
		URI:      os.Getenv("NEO4J_URI"),
		Username: os.Getenv("NEO4J_USERNAME"),
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: os.Getenv("NEO4J_DATABASE"),
	}

	var missing []string
	if config.URI == "" {
		missing = append(missing, "NEO4J_URI")
	}
	if config.Username == "" {
		missing = append(missing, "NEO4J_USERNAME")
	}
	if config.Password == "" {
		missing = append(missing, "NEO4J_PASSWORD")
	}
	if len(missing) > 0 {
		return nil, NewError("read graph configuration", fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", ")))
	}

	return config, nil
}

// Configuration is the full backend configuration, read once at startup.
// Backend credentials are validated eagerly here, not per request.
type Configuration struct {
	Graph  *GraphConfiguration
	Vector *DatabaseConfiguration

	// Generation backend: "openai" or "ollama"
	GenerationBackend string
	GenerationModel   string
	OpenAIAPIKey      string
	OllamaServerURL   string

	// Embedding backend: "openai" or "local"
	EmbeddingBackend string
	EmbeddingModel   string
	EmbeddingDim     int

	// Reranking is optional; empty key selects the deterministic fallback
	CohereAPIKey string
	RerankModel  string
}

// NewConfiguration reads and validates the full configuration from environment
// variables. Defaults follow the models the stores were populated with:
// gpt-4o-mini for generation, text-embedding-3-small (1536 dimensions) for
// embeddings, rerank-english-v3.0 for reranking.
func NewConfiguration() (*Configuration, error) {
	graph, err := NewGraphConfiguration()
	if err != nil {
		return nil, err
	}

	vector, err := NewDatabaseConfiguration()
	if err != nil {
		return nil, err
	}

	config := &Configuration{
		Graph:             graph,
		Vector:            vector,
		GenerationBackend: getenvDefault("GENERATION_BACKEND", "openai"),
		GenerationModel:   getenvDefault("GENERATION_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OllamaServerURL:   getenvDefault("OLLAMA_SERVER_URL", "http://localhost:11434"),
		EmbeddingBackend:  getenvDefault("EMBEDDING_BACKEND", "openai"),
		EmbeddingModel:    getenvDefault("EMBEDDING_MODEL", "text-embedding-3-small"),
		CohereAPIKey:      os.Getenv("COHERE_API_KEY"),
		RerankModel:       getenvDefault("RERANK_MODEL", "rerank-english-v3.0"),
	}

	dim := getenvDefault("EMBEDDING_DIM", "1536")
	config.EmbeddingDim, err = strconv.Atoi(dim)
	if err != nil {
		return nil, NewError("read embedding dimension", fmt.Errorf("EMBEDDING_DIM is not a number: %q", dim))
	}

	switch config.GenerationBackend {
	case "openai":
		if config.OpenAIAPIKey == "" {
			return nil, NewError("validate configuration", fmt.Errorf("OPENAI_API_KEY is required for the openai generation backend"))
		}
	case "ollama":
	default:
		return nil, NewError("validate configuration", fmt.Errorf("unknown generation backend %q", config.GenerationBackend))
	}

	switch config.EmbeddingBackend {
	case "openai":
		if config.OpenAIAPIKey == "" {
			return nil, NewError("validate configuration", fmt.Errorf("OPENAI_API_KEY is required for the openai embedding backend"))
		}
	case "local":
	default:
		return nil, NewError("validate configuration", fmt.Errorf("unknown embedding backend %q", config.EmbeddingBackend))
	}

	return config, nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
