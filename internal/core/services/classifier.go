package services

import (
	"context"
	"encoding/json"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
)

const (
	classifierMaxInput  = 8000
	classifierMaxTokens = 300

	classifierSystemPrompt = "You are a document classifier for a career intelligence platform. " +
		"Classify the given document excerpt as one of: resume, job_description, cover_letter, other. " +
		"Respond with a JSON object: {\"document_type\": \"...\", \"confidence\": 0.0-1.0, \"reasoning\": \"...\"}."
)

// controlChars matches non-printable bytes stripped before the text reaches a
// model prompt. Tab, newline and carriage return stay.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f]`)

// SpecResolver resolves the model endpoint used for a user's AI calls.
type SpecResolver interface {
	ActiveSpecForUser(ctx context.Context, userID string) (domain.ProviderSpec, error)
}

// ClassifierService decides what kind of document was uploaded. It never
// fails the pipeline: every error path degrades to an unknown classification.
type ClassifierService struct {
	specs SpecResolver
	llm   ports.LLMClient
}

func NewClassifierService(specs SpecResolver, llm ports.LLMClient) *ClassifierService {
	return &ClassifierService{specs: specs, llm: llm}
}

func (s *ClassifierService) Classify(ctx context.Context, userID, text string) domain.Classification {
	spec, err := s.specs.ActiveSpecForUser(ctx, userID)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Info("no usable provider for classification")
		return domain.UnknownClassification("no LLM provider configured")
	}

	raw, err := s.llm.Complete(ctx, spec, ports.CompletionRequest{
		System:    classifierSystemPrompt,
		User:      SanitizeForPrompt(text, classifierMaxInput),
		JSONMode:  true,
		MaxTokens: classifierMaxTokens,
	})
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("classification call failed")
		return domain.UnknownClassification("classification call failed")
	}

	var verdict domain.Classification
	if err := json.Unmarshal([]byte(extractJSON(raw)), &verdict); err != nil {
		log.WithError(err).Warn("classifier returned unparseable verdict")
		return domain.UnknownClassification("classifier response was not valid JSON")
	}

	switch verdict.DocumentType {
	case domain.DocumentTypeResume, domain.DocumentTypeJobDescription,
		domain.DocumentTypeCoverLetter, domain.DocumentTypeOther:
	default:
		return domain.UnknownClassification("classifier returned an unknown document type")
	}
	if verdict.Confidence < 0 {
		verdict.Confidence = 0
	}
	if verdict.Confidence > 1 {
		verdict.Confidence = 1
	}
	return verdict
}

// SanitizeForPrompt strips control characters, clamps length and escapes HTML
// so document content cannot smuggle markup into the prompt.
func SanitizeForPrompt(text string, maxLen int) string {
	text = controlChars.ReplaceAllString(text, "")
	return html.EscapeString(truncateUTF8(text, maxLen))
}

// truncateUTF8 clamps s to at most max bytes without splitting a multi-byte
// rune at the cut.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// extractJSON pulls the outermost JSON object out of a model reply that may
// wrap it in prose or a code fence.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
