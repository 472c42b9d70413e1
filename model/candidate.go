package model

import (
	"fmt"
	"strings"
)

// Provenance marks which retrieval modality produced a candidate.
type Provenance string

const (
	ProvenanceGraph  Provenance = "graph"
	ProvenanceVector Provenance = "vector"
)

// Candidate is one piece of evidence offered to the reranker: either the
// aggregated graph result or a single vector chunk, in textual form.
type Candidate struct {
	Text       string     `json:"text"`
	Provenance Provenance `json:"provenance"`
	Score      float64    `json:"score"`
}

// DedupedResult holds the flattened graph query values, distinct by
// structural equality, in order of first occurrence.
type DedupedResult []any

// Render serializes the graph result as one composite context document,
// paired with the question it answers.
func (r DedupedResult) Render(question string) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("{%s: [%s]}", question, strings.Join(parts, ", "))
}

// FusedContext is the reranked candidate list, truncated to the configured
// top-N, ordered by non-increasing relevance score.
type FusedContext []Candidate

// Render serializes the fused context for the synthesis prompt.
func (f FusedContext) Render() string {
	var b strings.Builder
	for i, c := range f {
		fmt.Fprintf(&b, "[%d] (%s) %s\n", i+1, c.Provenance, c.Text)
	}
	return b.String()
}
