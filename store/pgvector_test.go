package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuzudb/graph-rag/model"
)

func TestNewPGVectorStore(t *testing.T) {
	db := initDB(t)

	t.Run("Create store", func(t *testing.T) {
		store, err := NewPGVectorStore(db, 3, true)
		require.NoError(t, err)
		assert.NotNil(t, store)
	})

	t.Run("Nil database", func(t *testing.T) {
		store, err := NewPGVectorStore(nil, 3, false)
		assert.Error(t, err)
		assert.Nil(t, store)
	})

	t.Run("Invalid embedding dimension", func(t *testing.T) {
		store, err := NewPGVectorStore(db, 0, false)
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestPGVectorStoreSearch(t *testing.T) {
	db := initDB(t)
	ctx := context.Background()

	store, err := NewPGVectorStore(db, 3, true)
	require.NoError(t, err)

	seed := []struct {
		text      string
		embedding []float32
	}{
		{"exact match", []float32{1, 0, 0}},
		{"close match", []float32{0.9, 0.1, 0}},
		{"orthogonal", []float32{0, 1, 0}},
		{"opposite", []float32{-1, 0, 0}},
	}
	for _, s := range seed {
		chunk := &model.Chunk{
			Text:     s.text,
			SourceID: "search-test",
			Metadata: model.Metadata{"kind": "fixture"},
		}
		require.NoError(t, store.Insert(ctx, chunk, s.embedding))
	}

	t.Run("Orders by similarity descending", func(t *testing.T) {
		chunks, err := store.Search(ctx, []float32{1, 0, 0}, 10)
		require.NoError(t, err)
		require.Len(t, chunks, 4)

		assert.Equal(t, "exact match", chunks[0].Text)
		assert.Equal(t, "close match", chunks[1].Text)
		for i := 1; i < len(chunks); i++ {
			assert.LessOrEqual(t, chunks[i].Score, chunks[i-1].Score)
		}
		assert.InDelta(t, 1.0, chunks[0].Score, 1e-6)
	})

	t.Run("Honors limit", func(t *testing.T) {
		chunks, err := store.Search(ctx, []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		assert.Len(t, chunks, 2)
	})

	t.Run("Round-trips metadata and source", func(t *testing.T) {
		chunks, err := store.Search(ctx, []float32{1, 0, 0}, 1)
		require.NoError(t, err)
		require.Len(t, chunks, 1)
		assert.Equal(t, "search-test", chunks[0].SourceID)
		assert.Equal(t, "fixture", chunks[0].Metadata["kind"])
	})

	t.Run("Delete by source", func(t *testing.T) {
		err := store.DeleteBySource(ctx, "search-test")
		require.NoError(t, err)

		chunks, err := store.Search(ctx, []float32{1, 0, 0}, 10)
		require.NoError(t, err)
		assert.Empty(t, chunks)
	})
}
