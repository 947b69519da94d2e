package domain

import "fmt"

// ============================================================================
// Knowledge Graph
// ============================================================================

type NodeType string

const (
	NodePerson         NodeType = "Person"
	NodeSkill          NodeType = "Skill"
	NodeCompany        NodeType = "Company"
	NodePosition       NodeType = "Position"
	NodeExperience     NodeType = "Experience"
	NodeUniversity     NodeType = "University"
	NodeDegree         NodeType = "Degree"
	NodeEducation      NodeType = "Education"
	NodeCertification  NodeType = "Certification"
	NodeProject        NodeType = "Project"
	NodeJobPosting     NodeType = "JobPosting"
	NodeRequirement    NodeType = "Requirement"
	NodeResponsibility NodeType = "Responsibility"
	NodeCoverLetter    NodeType = "CoverLetter"
	NodeDocument       NodeType = "Document"
)

var allNodeTypes = map[NodeType]struct{}{
	NodePerson: {}, NodeSkill: {}, NodeCompany: {}, NodePosition: {},
	NodeExperience: {}, NodeUniversity: {}, NodeDegree: {}, NodeEducation: {},
	NodeCertification: {}, NodeProject: {}, NodeJobPosting: {},
	NodeRequirement: {}, NodeResponsibility: {}, NodeCoverLetter: {},
	NodeDocument: {},
}

func ValidNodeType(s string) bool {
	_, ok := allNodeTypes[NodeType(s)]
	return ok
}

type RelationshipType string

const (
	RelHasSkill          RelationshipType = "HAS_SKILL"
	RelHasExperience     RelationshipType = "HAS_EXPERIENCE"
	RelHasEducation      RelationshipType = "HAS_EDUCATION"
	RelHasCertification  RelationshipType = "HAS_CERTIFICATION"
	RelWorkedOn          RelationshipType = "WORKED_ON"
	RelFromDocument      RelationshipType = "FROM_DOCUMENT"
	RelAtCompany         RelationshipType = "AT_COMPANY"
	RelAsPosition        RelationshipType = "AS_POSITION"
	RelUsedSkill         RelationshipType = "USED_SKILL"
	RelAtUniversity      RelationshipType = "AT_UNIVERSITY"
	RelForDegree         RelationshipType = "FOR_DEGREE"
	RelUsesSkill         RelationshipType = "USES_SKILL"
	RelRequiresSkill     RelationshipType = "REQUIRES_SKILL"
	RelHasRequirement    RelationshipType = "HAS_REQUIREMENT"
	RelHasResponsibility RelationshipType = "HAS_RESPONSIBILITY"
	RelForPosition       RelationshipType = "FOR_POSITION"
	RelRequires          RelationshipType = "REQUIRES"
	RelWorkedAt          RelationshipType = "WORKED_AT"
	RelWorksAt           RelationshipType = "WORKS_AT"
	RelEducatedAt        RelationshipType = "EDUCATED_AT"
	RelHasPosition       RelationshipType = "HAS_POSITION"
	RelHasDegree         RelationshipType = "HAS_DEGREE"
	RelTargets           RelationshipType = "TARGETS"
)

var allRelationshipTypes = map[RelationshipType]struct{}{
	RelHasSkill: {}, RelHasExperience: {}, RelHasEducation: {},
	RelHasCertification: {}, RelWorkedOn: {}, RelFromDocument: {},
	RelAtCompany: {}, RelAsPosition: {}, RelUsedSkill: {},
	RelAtUniversity: {}, RelForDegree: {}, RelUsesSkill: {},
	RelRequiresSkill: {}, RelHasRequirement: {}, RelHasResponsibility: {},
	RelForPosition: {}, RelRequires: {}, RelWorkedAt: {}, RelWorksAt: {},
	RelEducatedAt: {}, RelHasPosition: {}, RelHasDegree: {}, RelTargets: {},
}

func ValidRelationshipType(s string) bool {
	_, ok := allRelationshipTypes[RelationshipType(s)]
	return ok
}

// nodeColors drive the frontend force-graph rendering.
var nodeColors = map[NodeType]string{
	NodePerson:         "#3b82f6",
	NodeSkill:          "#10b981",
	NodeCompany:        "#f59e0b",
	NodePosition:       "#8b5cf6",
	NodeExperience:     "#ec4899",
	NodeUniversity:     "#06b6d4",
	NodeDegree:         "#14b8a6",
	NodeEducation:      "#0ea5e9",
	NodeCertification:  "#eab308",
	NodeProject:        "#f97316",
	NodeJobPosting:     "#ef4444",
	NodeRequirement:    "#a855f7",
	NodeResponsibility: "#d946ef",
	NodeCoverLetter:    "#84cc16",
	NodeDocument:       "#6b7280",
}

const (
	defaultNodeColor = "#9ca3af"
	LinkColor        = "#94a3b8"

	// MaxGraphNodes caps every graph response; larger graphs are downsampled.
	MaxGraphNodes = 100
	MaxGraphDepth = 5
)

func (t NodeType) Color() string {
	if c, ok := nodeColors[t]; ok {
		return c
	}
	return defaultNodeColor
}

// GraphNode is one rendered node. The unexported-style fields only influence
// downsampling order and anchor detection; they are not serialized.
type GraphNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
	Color string   `json:"color"`

	RelevanceScore float64 `json:"-"`
	Degree         int     `json:"-"`
	Date           string  `json:"-"`
	DocumentID     string  `json:"-"`
}

type GraphLink struct {
	Source string           `json:"source"`
	Target string           `json:"target"`
	Type   RelationshipType `json:"type"`
	Color  string           `json:"color"`
}

type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Links []GraphLink `json:"links"`
}

// GraphQuery is a validated read request against a user's knowledge graph.
type GraphQuery struct {
	UserID     string
	DocumentID *string
	NodeTypes  []NodeType
	MaxNodes   int
	MaxDepth   *int
}

// NewGraphQuery validates bounds and node type names.
func NewGraphQuery(userID string, documentID *string, types []string, maxNodes int, maxDepth *int) (*GraphQuery, error) {
	if maxNodes < 1 || maxNodes > MaxGraphNodes {
		return nil, ErrInvalidMaxNodes
	}
	if maxDepth != nil && (*maxDepth < 1 || *maxDepth > MaxGraphDepth) {
		return nil, ErrInvalidMaxDepth
	}
	var nodeTypes []NodeType
	for _, t := range types {
		if !ValidNodeType(t) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidNodeType, t)
		}
		nodeTypes = append(nodeTypes, NodeType(t))
	}
	return &GraphQuery{
		UserID:     userID,
		DocumentID: documentID,
		NodeTypes:  nodeTypes,
		MaxNodes:   maxNodes,
		MaxDepth:   maxDepth,
	}, nil
}

// GraphName returns the per-user FalkorDB graph key.
func GraphName(userID string) string {
	return fmt.Sprintf("resume_kg_%s", userID)
}

// GraphNodeID is the stable identifier of a document's anchor node.
func GraphNodeID(userID, documentID string) string {
	return fmt.Sprintf("%s:%s", GraphName(userID), documentID)
}

// ============================================================================
// Classification
// ============================================================================

// Classification is the structured verdict from the document classifier.
type Classification struct {
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"`
	Reasoning    string       `json:"reasoning"`
}

// UnknownClassification is the fallback when no provider is configured or the
// classifier call fails; callers continue with an unclassified document.
func UnknownClassification(reason string) Classification {
	return Classification{
		DocumentType: DocumentTypeUnknown,
		Confidence:   0.0,
		Reasoning:    reason,
	}
}

// SupportedForParsing reports whether a classified type continues the pipeline.
func SupportedForParsing(t DocumentType) bool {
	switch t {
	case DocumentTypeResume, DocumentTypeJobDescription, DocumentTypeCoverLetter:
		return true
	}
	return false
}

// UnsupportedTypeMessage is the terminal status message shown to users when a
// document classifies to a type the pipeline does not handle.
func UnsupportedTypeMessage(t DocumentType) string {
	return fmt.Sprintf("Document type '%s' is not supported. Only resumes, job descriptions, and cover letters are accepted.", t)
}
