package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQueryConfig(t *testing.T) {
	cfg := DefaultQueryConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, 20, cfg.TopN)
	assert.Equal(t, 0.3, cfg.Temperature)
	assert.Equal(t, 0.1, cfg.TranslateTemperature)
	assert.Equal(t, 42, cfg.Seed)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
	assert.Equal(t, 2, cfg.MaxRetries)
}
