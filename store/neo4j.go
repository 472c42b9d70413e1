package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"

	"github.com/kuzudb/graph-rag/model"
)

// Neo4jConfig contains connection options for the Neo4j graph store.
type Neo4jConfig struct {
	// URI is the bolt/neo4j connection URI; the scheme controls encryption.
	URI      string
	Username string
	Password string
	// Database selects the database to run against; empty uses the default.
	Database string

	MaxConnectionPoolSize int
	ConnectionTimeout     time.Duration
}

// DefaultNeo4jConfig returns a config with sensible defaults.
func DefaultNeo4jConfig() Neo4jConfig {
	return Neo4jConfig{
		URI:                   "bolt://localhost:7687",
		Username:              "neo4j",
		Password:              "password",
		MaxConnectionPoolSize: 50,
		ConnectionTimeout:     30 * time.Second,
	}
}

// Validate checks that the config can produce a driver.
func (c Neo4jConfig) Validate() error {
	if c.URI == "" {
		return model.NewRAGError(model.ErrCodeInvalidConfig, "graph store URI is required")
	}
	if c.Username == "" {
		return model.NewRAGError(model.ErrCodeInvalidConfig, "graph store username is required")
	}
	return nil
}

// Neo4jStore implements GraphStore over a Neo4j database.
// The driver pools connections, so one store may be shared across
// concurrent retrieval runs.
type Neo4jStore struct {
	config Neo4jConfig
	driver neo4j.DriverWithContext
	log    *slog.Logger
}

// NewNeo4jStore creates a store with the given configuration.
// Connect must be called before use.
func NewNeo4jStore(config Neo4jConfig, logger *slog.Logger) (*Neo4jStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Neo4jStore{config: config, log: logger}, nil
}

// Connect establishes and verifies the connection, retrying transient
// failures with bounded exponential backoff.
func (s *Neo4jStore) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(s.config.Username, s.config.Password, "")

	driver, err := neo4j.NewDriverWithContext(s.config.URI, auth, func(config *neo4j.Config) {
		config.MaxConnectionPoolSize = s.config.MaxConnectionPoolSize
		config.ConnectionAcquisitionTimeout = s.config.ConnectionTimeout
	})
	if err != nil {
		return model.WrapRAGError(model.ErrCodeInvalidConfig, "invalid graph store configuration", err)
	}

	verify := func() error {
		if err := driver.VerifyConnectivity(ctx); err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(verify, policy); err != nil {
		return model.WrapRetryableRAGError(model.ErrCodeStoreUnavailable, "graph store unreachable", err)
	}

	s.driver = driver
	s.log.Info("Connected to graph store", slog.String("uri", s.config.URI))
	return nil
}

// Close shuts down the underlying driver.
func (s *Neo4jStore) Close(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}
	return s.driver.Close(ctx)
}

// DescribeSchema reads the store's catalog procedures and assembles a
// normalized, validated schema snapshot. The snapshot is deterministic for an
// unchanged schema.
func (s *Neo4jStore) DescribeSchema(ctx context.Context) (*model.SchemaDescriptor, error) {
	nodeProps, err := s.Execute(ctx, "CALL db.schema.nodeTypeProperties() YIELD nodeLabels, propertyName, propertyTypes RETURN nodeLabels, propertyName, propertyTypes")
	if err != nil {
		return nil, err
	}

	relProps, err := s.Execute(ctx, "CALL db.schema.relTypeProperties() YIELD relType, propertyName, propertyTypes RETURN relType, propertyName, propertyTypes")
	if err != nil {
		return nil, err
	}

	endpoints, err := s.Execute(ctx, "MATCH (a)-[r]->(b) UNWIND labels(a) AS src UNWIND labels(b) AS dst RETURN DISTINCT src, type(r) AS rel, dst")
	if err != nil {
		return nil, err
	}

	descriptor := assembleSchema(nodeProps, relProps, endpoints)
	descriptor.Normalize()
	if err := descriptor.Validate(); err != nil {
		return nil, model.WrapRAGError(model.ErrCodeStoreUnavailable, "inconsistent schema snapshot", err)
	}
	return descriptor, nil
}

// Execute runs a read query and collects the ordered result rows.
func (s *Neo4jStore) Execute(ctx context.Context, query string) (*QueryResult, error) {
	if s.driver == nil {
		return nil, model.NewRAGError(model.ErrCodeStoreUnavailable, "graph store not connected")
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.config.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, nil)
		if err != nil {
			return nil, err
		}

		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}

		out := &QueryResult{}
		for i, record := range records {
			if i == 0 {
				out.Columns = record.Keys
			}
			row := make([]any, len(record.Values))
			for j, v := range record.Values {
				row[j] = normalizeValue(v)
			}
			out.Rows = append(out.Rows, row)
		}
		return out, nil
	})
	if err != nil {
		return nil, classifyNeo4jError(ctx, query, err)
	}

	return result.(*QueryResult), nil
}

// classifyNeo4jError maps driver failures onto the retrieval error taxonomy.
func classifyNeo4jError(ctx context.Context, query string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return model.WrapRetryableRAGError(model.ErrCodeTimeout, "graph query timed out", err).WithQuery(query)
	}

	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) && strings.HasPrefix(neoErr.Code, "Neo.ClientError.Statement") {
		return model.WrapRAGError(model.ErrCodeQuerySyntax, "query rejected by graph store", err).WithQuery(query)
	}

	return model.WrapRetryableRAGError(model.ErrCodeStoreUnavailable, "graph query failed", err).WithQuery(query)
}

// normalizeValue converts driver-specific graph values into plain Go values
// so downstream deduplication can compare them structurally.
func normalizeValue(v any) any {
	switch value := v.(type) {
	case dbtype.Node:
		props := make(map[string]any, len(value.Props)+1)
		for k, p := range value.Props {
			props[k] = normalizeValue(p)
		}
		if len(value.Labels) > 0 {
			props["_label"] = value.Labels[0]
		}
		return props
	case dbtype.Relationship:
		props := make(map[string]any, len(value.Props)+1)
		for k, p := range value.Props {
			props[k] = normalizeValue(p)
		}
		props["_type"] = value.Type
		return props
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// assembleSchema builds a SchemaDescriptor from the three catalog result sets.
func assembleSchema(nodeProps, relProps, endpoints *QueryResult) *model.SchemaDescriptor {
	nodes := make(map[string][]model.Property)
	for _, row := range nodeProps.Rows {
		if len(row) < 3 {
			continue
		}
		labels, _ := row[0].([]any)
		for _, l := range labels {
			label, ok := l.(string)
			if !ok {
				continue
			}
			if _, exists := nodes[label]; !exists {
				nodes[label] = nil
			}
			if prop, ok := propertyFromRow(row[1], row[2]); ok {
				nodes[label] = append(nodes[label], prop)
			}
		}
	}

	rels := make(map[string][]model.Property)
	for _, row := range relProps.Rows {
		if len(row) < 3 {
			continue
		}
		label, ok := row[0].(string)
		if !ok {
			continue
		}
		label = strings.Trim(strings.TrimPrefix(label, ":"), "`")
		if _, exists := rels[label]; !exists {
			rels[label] = nil
		}
		if prop, ok := propertyFromRow(row[1], row[2]); ok {
			rels[label] = append(rels[label], prop)
		}
	}

	descriptor := &model.SchemaDescriptor{}
	for label, props := range nodes {
		descriptor.Nodes = append(descriptor.Nodes, model.NodeType{Label: label, Properties: props})
	}

	for _, row := range endpoints.Rows {
		if len(row) < 3 {
			continue
		}
		src, _ := row[0].(string)
		rel, _ := row[1].(string)
		dst, _ := row[2].(string)
		if src == "" || rel == "" || dst == "" {
			continue
		}
		descriptor.Relationships = append(descriptor.Relationships, model.RelationshipType{
			Label:      rel,
			Source:     src,
			Target:     dst,
			Properties: rels[rel],
		})
	}

	return descriptor
}

// propertyFromRow converts a (propertyName, propertyTypes) pair from the
// catalog procedures. The name may be null for empty types.
func propertyFromRow(name, types any) (model.Property, bool) {
	propName, ok := name.(string)
	if !ok || propName == "" {
		return model.Property{}, false
	}

	propType := "ANY"
	if typeList, ok := types.([]any); ok && len(typeList) > 0 {
		if t, ok := typeList[0].(string); ok {
			propType = t
		}
	}

	baseType, isList := mapPropertyType(propType)
	return model.Property{Name: propName, Type: baseType, IsList: isList}, true
}

// mapPropertyType converts a driver type name such as "StringArray" into the
// rendered base type and list flag.
func mapPropertyType(t string) (string, bool) {
	isList := strings.HasSuffix(t, "Array")
	base := strings.TrimSuffix(t, "Array")

	switch base {
	case "Long":
		base = "INT64"
	case "Double", "Float":
		base = "DOUBLE"
	case "String":
		base = "STRING"
	case "Boolean":
		base = "BOOL"
	default:
		base = strings.ToUpper(base)
	}
	return base, isList
}

var _ GraphStore = (*Neo4jStore)(nil)

// String returns a printable description of the store target.
func (s *Neo4jStore) String() string {
	return fmt.Sprintf("neo4j(%s)", s.config.URI)
}
