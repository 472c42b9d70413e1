package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataValue(t *testing.T) {
	t.Run("Value of empty metadata", func(t *testing.T) {
		m := Metadata{}

		value, err := m.Value()

		require.NoError(t, err)
		assert.Equal(t, []byte("{}"), value)
	})

	t.Run("Value of metadata with simple values", func(t *testing.T) {
		m := Metadata{
			"source": "movie_wiki",
			"page":   3,
			"split":  true,
		}

		value, err := m.Value()

		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(value.([]byte), &result)
		require.NoError(t, err)
		assert.Equal(t, "movie_wiki", result["source"])
		assert.Equal(t, float64(3), result["page"]) // JSON numbers become float64
		assert.Equal(t, true, result["split"])
	})
}

func TestMetadataScan(t *testing.T) {
	t.Run("Scan valid JSON bytes", func(t *testing.T) {
		var m Metadata

		err := m.Scan([]byte(`{"source":"movie_wiki","page":3}`))

		require.NoError(t, err)
		assert.Equal(t, "movie_wiki", m["source"])
		assert.Equal(t, float64(3), m["page"])
	})

	t.Run("Scan nil value yields empty metadata", func(t *testing.T) {
		var m Metadata

		err := m.Scan(nil)

		require.NoError(t, err)
		assert.NotNil(t, m)
		assert.Empty(t, m)
	})

	t.Run("Scan non-byte value fails", func(t *testing.T) {
		var m Metadata

		err := m.Scan(42)

		assert.Error(t, err)
	})
}
