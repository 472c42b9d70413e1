package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	graphrag "github.com/kuzudb/graph-rag"
	"github.com/kuzudb/graph-rag/helper"
)

// The first three questions are best answered by vector search, because the
// information lives in the raw text. The last three are best answered by
// graph search over the movie knowledge graph. Hybrid retrieval handles all
// six.
var questions = []string{
	"What were the names of the AI robots in the movie Interstellar?",
	"On which planet did the crew of the Endurance meet Mann?",
	"What happened inside the tesseract?",
	"Who wrote the movie Interstellar?",
	"What is Tom Cooper's character known for in Interstellar? Which actor played him?",
	"Which movies did Jessica Chastain act in that were directed by Christopher Nolan?",
}

func main() {
	// Backend credentials and connection settings come from the environment;
	// a local .env is convenient during development.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	config, err := helper.NewConfiguration()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	rag, err := graphrag.New(ctx, config)
	if err != nil {
		log.Fatalf("Failed to create GraphRAG: %v", err)
	}
	defer rag.Close(ctx)

	for i, question := range questions {
		if i > 0 {
			fmt.Println("---")
		}
		fmt.Printf("Q%d: %s\n\n", i+1, question)

		answer, err := rag.RunHybrid(ctx, question, nil)
		if err != nil {
			log.Printf("Q%d failed: %v", i+1, err)
			continue
		}
		fmt.Printf("%s\n", answer.Text)
	}
}
