package model

// Chunk is one text chunk returned by the vector store. Score is the cosine
// similarity to the query embedding, in [-1, 1], higher is more relevant.
type Chunk struct {
	Text     string   `json:"text"`
	SourceID string   `json:"source_id"`
	Score    float64  `json:"score"`
	Metadata Metadata `json:"metadata,omitempty"`
}
