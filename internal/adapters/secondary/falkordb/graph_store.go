// Package falkordb implements the graph store port against FalkorDB, which
// speaks the Redis protocol. Queries go through GRAPH.QUERY with Cypher built
// from validated inputs.
package falkordb

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/config"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

type graphStore struct {
	client *redis.Client
}

func NewGraphStore(client *redis.Client) ports.GraphStore {
	return &graphStore{client: client}
}

// NewClient dials the FalkorDB endpoint.
func NewClient(cfg config.FalkorDBConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
	})
}

func (s *graphStore) FetchSubgraph(ctx context.Context, q *domain.GraphQuery) (*ports.RawGraph, error) {
	graph := domain.GraphName(q.UserID)
	cypher := buildSubgraphQuery(q)

	reply, err := s.client.Do(ctx, "GRAPH.QUERY", graph, cypher).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGraphUnavailable, err)
	}

	raw := &ports.RawGraph{}
	seen := make(map[int64]struct{})
	for _, row := range resultRows(reply) {
		if len(row) > 0 {
			if n, ok := parseNode(row[0]); ok {
				if _, dup := seen[n.id]; !dup {
					seen[n.id] = struct{}{}
					raw.Nodes = append(raw.Nodes, renderNode(n))
				}
			}
		}
		if len(row) > 1 {
			for _, e := range collectEdges(row[1]) {
				raw.Links = append(raw.Links, domain.GraphLink{
					Source: strconv.FormatInt(e.src, 10),
					Target: strconv.FormatInt(e.dst, 10),
					Type:   domain.RelationshipType(e.typ),
				})
			}
		}
	}
	return raw, nil
}

func (s *graphStore) UpsertDocumentNode(ctx context.Context, graph string, node ports.DocumentNode) (string, error) {
	cypher := fmt.Sprintf(
		"MERGE (d:Document {document_id: %s}) SET d.name = %s, d.user_id = %s, d.document_type = %s, d.processed_at = %s, d.ontology_version = %s",
		quote(node.DocumentID),
		quote(node.Filename),
		quote(node.UserID),
		quote(string(node.DocumentType)),
		quote(node.ProcessedAt),
		quote(node.OntologyVersion),
	)
	if _, err := s.client.Do(ctx, "GRAPH.QUERY", graph, cypher).Result(); err != nil {
		return "", fmt.Errorf("upsert document node: %w", err)
	}
	return fmt.Sprintf("%s:%s", graph, node.DocumentID), nil
}

func (s *graphStore) MergeExtraction(ctx context.Context, graph, documentID string, entities []ports.ExtractedEntity, relations []ports.ExtractedRelation) error {
	for _, e := range entities {
		var b strings.Builder
		fmt.Fprintf(&b, "MERGE (e:%s {key: %s}) SET e.name = %s", e.Type, quote(e.Key), quote(e.Label))
		for _, attr := range sortedKeys(e.Attributes) {
			if !safeIdent(attr) {
				continue
			}
			fmt.Fprintf(&b, ", e.%s = %s", attr, quote(e.Attributes[attr]))
		}
		if _, err := s.client.Do(ctx, "GRAPH.QUERY", graph, b.String()).Result(); err != nil {
			return fmt.Errorf("merge entity %s: %w", e.Key, err)
		}

		link := fmt.Sprintf(
			"MATCH (d:Document {document_id: %s}) MATCH (e:%s {key: %s}) MERGE (d)-[:%s]->(e)",
			quote(documentID), e.Type, quote(e.Key), domain.RelFromDocument,
		)
		if _, err := s.client.Do(ctx, "GRAPH.QUERY", graph, link).Result(); err != nil {
			return fmt.Errorf("link entity %s: %w", e.Key, err)
		}
	}

	for _, r := range relations {
		cypher := fmt.Sprintf(
			"MATCH (a {key: %s}) MATCH (b {key: %s}) MERGE (a)-[:%s]->(b)",
			quote(r.SourceKey), quote(r.TargetKey), r.Type,
		)
		if _, err := s.client.Do(ctx, "GRAPH.QUERY", graph, cypher).Result(); err != nil {
			return fmt.Errorf("merge relation %s->%s: %w", r.SourceKey, r.TargetKey, err)
		}
	}
	return nil
}

func (s *graphStore) DeleteDocumentNode(ctx context.Context, graph, documentID string) error {
	cypher := fmt.Sprintf("MATCH (d:Document {document_id: %s}) DETACH DELETE d", quote(documentID))
	if _, err := s.client.Do(ctx, "GRAPH.QUERY", graph, cypher).Result(); err != nil {
		return fmt.Errorf("delete document node: %w", err)
	}
	return nil
}

// buildSubgraphQuery pivots on the document anchor when a document id is set,
// expanding outward within the depth bound. The zero-length hop keeps the
// anchor itself in the result. User-level queries span the whole graph.
func buildSubgraphQuery(q *domain.GraphQuery) string {
	depth := domain.MaxGraphDepth
	if q.MaxDepth != nil {
		depth = *q.MaxDepth
	}
	filter := typeFilter(q.NodeTypes)

	var b strings.Builder
	if q.DocumentID != nil {
		fmt.Fprintf(&b, "MATCH (d:Document {document_id: %s})", quote(*q.DocumentID))
		fmt.Fprintf(&b, " OPTIONAL MATCH (d)-[r*0..%d]->(n)", depth)
		if filter != "" {
			fmt.Fprintf(&b, " WHERE %s OR n:%s", filter, domain.NodeDocument)
		}
		b.WriteString(" RETURN DISTINCT n, r")
		return b.String()
	}

	b.WriteString("MATCH (n)")
	if filter != "" {
		fmt.Fprintf(&b, " WHERE %s", filter)
	}
	b.WriteString(" OPTIONAL MATCH (n)-[r]->(m) RETURN n, r")
	return b.String()
}

func typeFilter(types []domain.NodeType) string {
	if len(types) == 0 {
		return ""
	}
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, fmt.Sprintf("n:%s", t))
	}
	return strings.Join(parts, " OR ")
}

func renderNode(n rawNode) domain.GraphNode {
	label := propString(n.props, "name")
	if label == "" {
		label = propString(n.props, "canonical_name")
	}
	if label == "" {
		label = "Unknown"
	}

	var nodeType domain.NodeType
	if len(n.labels) > 0 {
		nodeType = domain.NodeType(n.labels[0])
	}

	return domain.GraphNode{
		ID:             strconv.FormatInt(n.id, 10),
		Label:          label,
		Type:           nodeType,
		RelevanceScore: propFloat(n.props, "relevance_score"),
		Degree:         propInt(n.props, "degree"),
		Date:           propString(n.props, "date"),
		DocumentID:     propString(n.props, "document_id"),
	}
}

// quote produces a double-quoted Cypher string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

var identRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func safeIdent(s string) bool {
	return identRe.MatchString(s)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
