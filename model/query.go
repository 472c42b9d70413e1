package model

import (
	"errors"
	"strings"
)

// StructuredQuery is a graph query in the store's query language together
// with the natural-language question it was derived from.
type StructuredQuery struct {
	Cypher   string `json:"cypher"`
	Question string `json:"question"`
}

// Validate checks the translator output after sanitization. A query that is
// empty or still carries fence markers is a translation failure, not
// something the executor should see.
func (q *StructuredQuery) Validate() error {
	if strings.TrimSpace(q.Cypher) == "" {
		return errors.New("structured query is empty")
	}
	if strings.Contains(q.Cypher, "```") {
		return errors.New("structured query contains fence markers")
	}
	return nil
}
