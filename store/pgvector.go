package store

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/kuzudb/graph-rag/helper"
	"github.com/kuzudb/graph-rag/model"
	loadSql "github.com/kuzudb/graph-rag/sql"
)

// PGVectorStore implements VectorStore on PostgreSQL with the pgvector
// extension. All access goes through SQL functions loaded at construction.
type PGVectorStore struct {
	db *helper.Database
}

// NewPGVectorStore creates a new pgvector-backed store.
// It loads the vector SQL functions and creates the vectors table for the
// given embedding dimension. If force is true, the SQL functions are reloaded
// even if they already exist.
func NewPGVectorStore(db *helper.Database, embeddingDim int, force bool) (*PGVectorStore, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if embeddingDim <= 0 {
		return nil, helper.NewError("embedding dimension validation", fmt.Errorf("embedding dimension must be positive, got %d", embeddingDim))
	}

	store := &PGVectorStore{
		db: db,
	}

	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("init database extensions", err)
	}

	err = loadSql.LoadVectorsSql(db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load vectors sql", err)
	}

	_, err = db.Instance.Exec(`SELECT init_vectors($1);`, embeddingDim)
	if err != nil {
		return nil, helper.NewError("init vectors table", err)
	}

	db.Logger.Info("Initialized PGVectorStore")

	return store, nil
}

// Insert stores a chunk with its embedding.
func (s *PGVectorStore) Insert(ctx context.Context, chunk *model.Chunk, embedding []float32) error {
	_, err := s.db.Instance.ExecContext(
		ctx,
		`SELECT * FROM insert_vector($1, $2, $3, $4)`,
		chunk.SourceID,
		chunk.Text,
		chunk.Metadata,
		pgvector.NewVector(embedding),
	)
	if err != nil {
		return model.WrapRetryableRAGError(model.ErrCodeStoreUnavailable, "insert vector", err)
	}
	return nil
}

// Search returns the chunks most similar to the embedding, best first.
// Scores are cosine similarities in [-1, 1].
func (s *PGVectorStore) Search(ctx context.Context, embedding []float32, limit int) ([]model.Chunk, error) {
	rows, err := s.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_vectors_by_similarity($1, $2)`,
		pgvector.NewVector(embedding),
		limit,
	)
	if err != nil {
		return nil, classifyVectorError(ctx, err)
	}
	defer rows.Close()

	var chunks []model.Chunk
	for rows.Next() {
		var id int64
		chunk := model.Chunk{}
		err := rows.Scan(
			&id,
			&chunk.SourceID,
			&chunk.Text,
			&chunk.Metadata,
			&chunk.Score,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		chunks = append(chunks, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}

// DeleteBySource removes all chunks stored under the given source ID.
func (s *PGVectorStore) DeleteBySource(ctx context.Context, sourceID string) error {
	_, err := s.db.Instance.ExecContext(ctx, `SELECT delete_vectors_by_source($1)`, sourceID)
	if err != nil {
		return model.WrapRetryableRAGError(model.ErrCodeStoreUnavailable, "delete vectors", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *PGVectorStore) Close(ctx context.Context) error {
	return s.db.Instance.Close()
}

func classifyVectorError(ctx context.Context, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return model.WrapRetryableRAGError(model.ErrCodeTimeout, "vector search timed out", err)
	}
	return model.WrapRetryableRAGError(model.ErrCodeStoreUnavailable, "vector search failed", err)
}

var _ VectorStore = (*PGVectorStore)(nil)
