package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	graphrag "github.com/kuzudb/graph-rag"
	"github.com/kuzudb/graph-rag/core/llm"
	"github.com/kuzudb/graph-rag/helper"
	"github.com/kuzudb/graph-rag/model"
	"github.com/kuzudb/graph-rag/store"
)

// sampleChunks is a tiny corpus about Interstellar for the vector side.
var sampleChunks = []string{
	"Interstellar features two AI robots named TARS and CASE that assist the crew of the Endurance.",
	"The crew of the Endurance met Dr. Mann on an icy planet covered in frozen clouds.",
	"Inside the tesseract, Cooper communicates with his daughter Murph across time using gravity.",
}

func main() {
	ctx := context.Background()

	// Start a test PostgreSQL container for the vector store
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(ctx)

	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: slog.LevelInfo},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	db, err := helper.NewDatabase("basic-example", dbConfig, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Local sentence transformer, 384 dimensions, no API keys needed
	embedder, err := llm.DefaultLocalEmbedder()
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}

	vectorStore, err := store.NewPGVectorStore(db, 384, false)
	if err != nil {
		log.Fatalf("Failed to create vector store: %v", err)
	}

	fmt.Println("Ingesting sample chunks...")
	for i, text := range sampleChunks {
		embedding, err := embedder(ctx, text)
		if err != nil {
			log.Fatalf("Failed to embed chunk %d: %v", i, err)
		}
		chunk := &model.Chunk{
			Text:     text,
			SourceID: "interstellar-notes",
			Metadata: model.Metadata{"topic": "interstellar"},
		}
		if err := vectorStore.Insert(ctx, chunk, embedding); err != nil {
			log.Fatalf("Failed to insert chunk %d: %v", i, err)
		}
	}

	// A mock graph store and scripted generator keep the example self-contained:
	// the generator answers translation calls with Cypher and synthesis calls
	// with a summary of the retrieved context.
	graphStore := &store.MockGraphStore{
		Schema: &model.SchemaDescriptor{
			Nodes: []model.NodeType{
				{Label: "Movie", Properties: []model.Property{{Name: "title", Type: "STRING"}}},
				{Label: "Robot", Properties: []model.Property{{Name: "name", Type: "STRING"}}},
			},
			Relationships: []model.RelationshipType{
				{Label: "APPEARS_IN", Source: "Robot", Target: "Movie"},
			},
		},
		Result: &store.QueryResult{
			Columns: []string{"r.name"},
			Rows:    [][]any{{"TARS"}, {"CASE"}},
		},
	}
	generator := &llm.MockGenerator{
		GenerateFunc: func(ctx context.Context, system, prompt string, opts llm.GenerateOptions) (string, error) {
			if opts.Temperature == 0.1 {
				return "MATCH (r:Robot)-[:APPEARS_IN]->(m:Movie {title: 'Interstellar'}) RETURN r.name", nil
			}
			return "Based on the retrieved context, the AI robots in Interstellar are TARS and CASE.", nil
		},
	}

	rag := graphrag.NewWithComponents(graphStore, vectorStore, generator, embedder, nil, logger)
	defer rag.Close(ctx)

	question := "What were the names of the AI robots in the movie Interstellar?"
	fmt.Printf("\nQuestion: %s\n", question)

	answer, err := rag.RunHybrid(ctx, question, nil)
	if err != nil {
		log.Fatalf("Retrieval failed: %v", err)
	}

	fmt.Printf("\nAnswer: %s\n", answer.Text)
}
