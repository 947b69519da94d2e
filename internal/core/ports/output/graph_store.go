package output

import (
	"context"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

// RawGraph is the unfiltered query result before downsampling and coloring.
type RawGraph struct {
	Nodes []domain.GraphNode
	Links []domain.GraphLink
}

// ExtractedEntity is one node produced by the extraction model, already
// normalized through the ontology.
type ExtractedEntity struct {
	Type       domain.NodeType
	Key        string
	Label      string
	Attributes map[string]string
}

// ExtractedRelation links two extracted entities by key.
type ExtractedRelation struct {
	Type      domain.RelationshipType
	SourceKey string
	TargetKey string
}

// DocumentNode is the anchor node written for every processed document.
type DocumentNode struct {
	DocumentID      string
	UserID          string
	Filename        string
	DocumentType    domain.DocumentType
	ProcessedAt     string
	OntologyVersion string
}

// GraphStore defines knowledge-graph operations against the per-user graph.
type GraphStore interface {
	// FetchSubgraph reads nodes and links, optionally pivoting on a document's
	// anchor node within maxDepth hops and filtering by node types.
	FetchSubgraph(ctx context.Context, q *domain.GraphQuery) (*RawGraph, error)

	// UpsertDocumentNode writes the Document anchor node and returns its graph node id.
	UpsertDocumentNode(ctx context.Context, graph string, node DocumentNode) (string, error)

	// MergeExtraction merges extracted entities and relations into the graph
	// and links every entity FROM_DOCUMENT to the anchor node.
	MergeExtraction(ctx context.Context, graph, documentID string, entities []ExtractedEntity, relations []ExtractedRelation) error

	// DeleteDocumentNode detaches and removes a document's anchor node.
	DeleteDocumentNode(ctx context.Context, graph, documentID string) error
}
