package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/ontology"
)

const (
	extractionMaxTokens = 4000

	extractionSystemPrompt = "You are an information extraction engine for a career knowledge graph. " +
		"Extract entities and relationships from the document as a JSON object: " +
		"{\"entities\": [{\"type\": \"NodeType\", \"name\": \"...\", \"attributes\": {}}], " +
		"\"relations\": [{\"type\": \"RELATION_TYPE\", \"source\": \"entity name\", \"target\": \"entity name\"}]}. "
)

// ExtractionService turns parsed markdown into normalized graph entities and
// merges them into the user's knowledge graph.
type ExtractionService struct {
	llm   ports.LLMClient
	store ports.GraphStore
}

func NewExtractionService(llm ports.LLMClient, store ports.GraphStore) *ExtractionService {
	return &ExtractionService{llm: llm, store: store}
}

// modelEntity and modelRelation mirror the JSON the extraction prompt asks for.
type modelEntity struct {
	Type       string            `json:"type"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes"`
}

type modelRelation struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type modelExtraction struct {
	Entities  []modelEntity   `json:"entities"`
	Relations []modelRelation `json:"relations"`
}

// Extract runs the extraction model over the markdown and merges the result
// into the graph, linking every entity to the document's anchor node.
func (s *ExtractionService) Extract(ctx context.Context, spec domain.ProviderSpec, doc *domain.Document, markdownText string) error {
	if len(markdownText) > ontology.MaxContentLength {
		markdownText = markdownText[:ontology.MaxContentLength]
	}

	prompt := extractionSystemPrompt + ontology.ExtractionInstructions(doc.DocumentType)
	raw, err := s.llm.Complete(ctx, spec, ports.CompletionRequest{
		System:    prompt,
		User:      SanitizeForPrompt(markdownText, ontology.MaxContentLength),
		JSONMode:  true,
		MaxTokens: extractionMaxTokens,
	})
	if err != nil {
		return fmt.Errorf("extraction call: %w", err)
	}

	var parsed modelExtraction
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		return fmt.Errorf("parse extraction output: %w", err)
	}

	entities, relations := s.normalize(parsed)
	if len(entities) == 0 {
		log.WithField("document_id", doc.ID).Info("extraction produced no entities")
		return nil
	}

	graph := domain.GraphName(doc.UserID)
	if err := s.store.MergeExtraction(ctx, graph, doc.ID.String(), entities, relations); err != nil {
		return fmt.Errorf("merge extraction: %w", err)
	}
	return nil
}

// normalize canonicalizes entity names through the ontology and drops
// entities or relations with unknown types. Relations are remapped from raw
// names to normalized keys.
func (s *ExtractionService) normalize(parsed modelExtraction) ([]ports.ExtractedEntity, []ports.ExtractedRelation) {
	entities := make([]ports.ExtractedEntity, 0, len(parsed.Entities))
	keyByRawName := make(map[string]string, len(parsed.Entities))
	seen := make(map[string]struct{}, len(parsed.Entities))

	for _, e := range parsed.Entities {
		name := strings.TrimSpace(e.Name)
		if name == "" || !domain.ValidNodeType(e.Type) {
			continue
		}
		nodeType := domain.NodeType(e.Type)

		attrs := make(map[string]string, len(e.Attributes)+1)
		for k, v := range e.Attributes {
			attrs[k] = v
		}

		label := name
		switch nodeType {
		case domain.NodeSkill:
			canonical, category := ontology.NormalizeSkill(name)
			label = canonical
			if category != "" {
				attrs["category"] = category
			}
		case domain.NodeCompany:
			label = ontology.NormalizeCompany(name)
		case domain.NodeUniversity:
			label = ontology.NormalizeUniversity(name)
		case domain.NodeDegree:
			canonical, level := ontology.NormalizeDegree(name)
			label = canonical
			if level != "" {
				attrs["level"] = level
			}
		}

		key := entityKey(nodeType, label)
		keyByRawName[strings.ToLower(name)] = key
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		entities = append(entities, ports.ExtractedEntity{
			Type:       nodeType,
			Key:        key,
			Label:      label,
			Attributes: attrs,
		})
	}

	relations := make([]ports.ExtractedRelation, 0, len(parsed.Relations))
	for _, r := range parsed.Relations {
		if !domain.ValidRelationshipType(r.Type) {
			continue
		}
		src, okSrc := keyByRawName[strings.ToLower(strings.TrimSpace(r.Source))]
		dst, okDst := keyByRawName[strings.ToLower(strings.TrimSpace(r.Target))]
		if !okSrc || !okDst || src == dst {
			continue
		}
		relations = append(relations, ports.ExtractedRelation{
			Type:      domain.RelationshipType(r.Type),
			SourceKey: src,
			TargetKey: dst,
		})
	}
	return entities, relations
}

func entityKey(t domain.NodeType, label string) string {
	return fmt.Sprintf("%s:%s", strings.ToLower(string(t)), strings.ToLower(label))
}
