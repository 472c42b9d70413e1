package model

import "time"

// QueryConfig represents configuration for one retrieval run
type QueryConfig struct {
	// Vector search parameters
	TopK int `json:"top_k"`

	// Fusion parameters
	TopN int `json:"top_n"`

	// Generation parameters
	Temperature          float64 `json:"temperature"`
	TranslateTemperature float64 `json:"translate_temperature"`
	Seed                 int     `json:"seed"`
	GenerationModel      string  `json:"generation_model,omitempty"`

	// Network call handling
	CallTimeout time.Duration `json:"call_timeout"`
	MaxRetries  int           `json:"max_retries"`
}

// DefaultQueryConfig returns a sensible default configuration
func DefaultQueryConfig() *QueryConfig {
	return &QueryConfig{
		TopK:                 10,
		TopN:                 20,
		Temperature:          0.3,
		TranslateTemperature: 0.1,
		Seed:                 42,
		CallTimeout:          30 * time.Second,
		MaxRetries:           2,
	}
}
