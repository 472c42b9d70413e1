package schema

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuzudb/graph-rag/model"
	"github.com/kuzudb/graph-rag/store"
)

func testSchema() *model.SchemaDescriptor {
	return &model.SchemaDescriptor{
		Nodes: []model.NodeType{
			{Label: "Writer", Properties: []model.Property{{Name: "name", Type: "STRING"}}},
			{Label: "Movie", Properties: []model.Property{
				{Name: "title", Type: "STRING"},
				{Name: "released", Type: "INT64"},
			}},
		},
		Relationships: []model.RelationshipType{
			{Label: "WROTE", Source: "Writer", Target: "Movie"},
		},
	}
}

func TestIntrospectorDescribe(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	t.Run("Returns normalized snapshot", func(t *testing.T) {
		introspector := NewIntrospector(&store.MockGraphStore{Schema: testSchema()}, logger)

		descriptor, err := introspector.Describe(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Movie", descriptor.Nodes[0].Label)
		assert.Equal(t, "released", descriptor.Nodes[0].Properties[0].Name)
	})

	t.Run("Rendering is deterministic", func(t *testing.T) {
		introspector := NewIntrospector(&store.MockGraphStore{Schema: testSchema()}, logger)

		first, err := introspector.Describe(context.Background())
		require.NoError(t, err)
		second, err := introspector.Describe(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first.Render(), second.Render())
	})

	t.Run("Propagates store errors", func(t *testing.T) {
		storeErr := model.NewRetryableRAGError(model.ErrCodeStoreUnavailable, "connection refused")
		introspector := NewIntrospector(&store.MockGraphStore{SchemaErr: storeErr}, logger)

		_, err := introspector.Describe(context.Background())
		assert.True(t, model.IsCode(err, model.ErrCodeStoreUnavailable))
	})

	t.Run("Rejects inconsistent schema", func(t *testing.T) {
		broken := testSchema()
		broken.Relationships[0].Target = "Ghost"
		introspector := NewIntrospector(&store.MockGraphStore{Schema: broken}, logger)

		_, err := introspector.Describe(context.Background())
		assert.Error(t, err)
	})

	t.Run("Fails when both endpoints missing", func(t *testing.T) {
		introspector := NewIntrospector(&store.MockGraphStore{Schema: &model.SchemaDescriptor{
			Relationships: []model.RelationshipType{{Label: "KNOWS", Source: "Person", Target: "Person"}},
		}}, logger)

		_, err := introspector.Describe(context.Background())
		assert.Error(t, err)
	})
}
