package model

import (
	"fmt"
	"sort"
	"strings"
)

// Property describes a single node or relationship property.
// List-typed properties carry their dimensions: a nil or empty Dimensions with
// IsList true renders as TYPE[], a fixed size N renders as TYPE[N].
type Property struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	IsList     bool   `json:"is_list"`
	Dimensions []int  `json:"dimensions,omitempty"`
}

// TypeString returns the rendered type including list markers, e.g. "FLOAT[1536]".
func (p Property) TypeString() string {
	if !p.IsList {
		return p.Type
	}
	if len(p.Dimensions) == 0 {
		return p.Type + "[]"
	}
	var b strings.Builder
	b.WriteString(p.Type)
	for _, d := range p.Dimensions {
		if d > 0 {
			fmt.Fprintf(&b, "[%d]", d)
		} else {
			b.WriteString("[]")
		}
	}
	return b.String()
}

// NodeType describes one node label and its properties.
type NodeType struct {
	Label      string     `json:"label"`
	Properties []Property `json:"properties"`
}

// RelationshipType describes one relationship label, its endpoint labels and properties.
type RelationshipType struct {
	Label      string     `json:"label"`
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	Properties []Property `json:"properties"`
}

// Pattern returns the directed pattern form, e.g. "(:Writer)-[:WROTE]->(:Movie)".
func (r RelationshipType) Pattern() string {
	return fmt.Sprintf("(:%s)-[:%s]->(:%s)", r.Source, r.Label, r.Target)
}

// SchemaDescriptor is an immutable snapshot of the graph store schema,
// taken once per query. The rendered text is part of the translation cache
// key, so rendering must be byte-identical for an unchanged schema.
type SchemaDescriptor struct {
	Nodes         []NodeType         `json:"nodes"`
	Relationships []RelationshipType `json:"relationships"`
}

// Normalize sorts node types, relationship types and their properties by name
// so that repeated snapshots of the same schema render identically.
func (s *SchemaDescriptor) Normalize() {
	sort.Slice(s.Nodes, func(i, j int) bool {
		return s.Nodes[i].Label < s.Nodes[j].Label
	})
	for i := range s.Nodes {
		props := s.Nodes[i].Properties
		sort.Slice(props, func(a, b int) bool { return props[a].Name < props[b].Name })
	}
	sort.Slice(s.Relationships, func(i, j int) bool {
		ri, rj := s.Relationships[i], s.Relationships[j]
		if ri.Label != rj.Label {
			return ri.Label < rj.Label
		}
		if ri.Source != rj.Source {
			return ri.Source < rj.Source
		}
		return ri.Target < rj.Target
	})
	for i := range s.Relationships {
		props := s.Relationships[i].Properties
		sort.Slice(props, func(a, b int) bool { return props[a].Name < props[b].Name })
	}
}

// Validate checks that every relationship endpoint label names a known node type.
func (s *SchemaDescriptor) Validate() error {
	labels := make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		labels[n.Label] = true
	}
	for _, r := range s.Relationships {
		if !labels[r.Source] {
			return fmt.Errorf("relationship %s references unknown source label %s", r.Label, r.Source)
		}
		if !labels[r.Target] {
			return fmt.Errorf("relationship %s references unknown target label %s", r.Label, r.Target)
		}
	}
	return nil
}

// Render produces the schema description handed to the translator prompt.
// Output is deterministic for a fixed descriptor.
func (s *SchemaDescriptor) Render() string {
	var b strings.Builder

	b.WriteString("Node properties:\n")
	for _, n := range s.Nodes {
		b.WriteString(n.Label)
		b.WriteString(" {")
		for i, p := range n.Properties {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteString(" ")
			b.WriteString(p.TypeString())
		}
		b.WriteString("}\n")
	}

	b.WriteString("Relationship properties:\n")
	for _, r := range s.Relationships {
		b.WriteString(r.Label)
		b.WriteString(" {")
		for i, p := range r.Properties {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteString(" ")
			b.WriteString(p.TypeString())
		}
		b.WriteString("}\n")
	}

	b.WriteString("Relationships:\n")
	for _, r := range s.Relationships {
		b.WriteString(r.Pattern())
		b.WriteString("\n")
	}

	return b.String()
}
