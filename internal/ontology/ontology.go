// Package ontology defines the knowledge-graph vocabulary and the entity
// normalization rules that keep extracted nodes deduplicated across documents.
package ontology

import "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"

// Version identifies the entity/relation vocabulary documents were extracted
// with. Stored on every document row and Document graph node.
const Version = "1.0.0"

// MaxContentLength bounds the markdown handed to the extraction model.
const MaxContentLength = 50000

// ExtractionInstructions returns the schema guidance injected into the
// extraction prompt for a supported document type.
func ExtractionInstructions(t domain.DocumentType) string {
	switch t {
	case domain.DocumentTypeResume:
		return "Extract the resume owner as a single Person node. Link skills via HAS_SKILL, " +
			"work history as Experience nodes (AT_COMPANY, AS_POSITION, USED_SKILL), " +
			"education as Education nodes (AT_UNIVERSITY, FOR_DEGREE), plus Certification " +
			"and Project nodes (HAS_CERTIFICATION, WORKED_ON). Use canonical names for " +
			"skills, companies, universities and degrees."
	case domain.DocumentTypeJobDescription:
		return "Extract one JobPosting node linked to its Company (AT_COMPANY) and Position " +
			"(FOR_POSITION). Model required skills via REQUIRES_SKILL and explicit " +
			"Requirement/Responsibility nodes via HAS_REQUIREMENT and HAS_RESPONSIBILITY."
	case domain.DocumentTypeCoverLetter:
		return "Extract one CoverLetter node. Link the author Person, the targeted Company " +
			"and Position (TARGETS), and any skills the letter claims via USES_SKILL."
	default:
		return ""
	}
}

// SkillCategories groups canonical skill names for category tagging.
var SkillCategories = map[string][]string{
	"programming_languages": {
		"Python", "JavaScript", "TypeScript", "Java", "Go", "Rust", "C++", "C#",
		"Ruby", "PHP", "Swift", "Kotlin", "Scala", "R", "MATLAB",
	},
	"frameworks": {
		"React", "Angular", "Vue.js", "Django", "FastAPI", "Flask", "Express.js",
		"Spring", "Next.js", "NestJS", "Rails", "Laravel",
	},
	"databases": {
		"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch", "DynamoDB",
		"Cassandra", "SQLite", "Oracle", "SQL Server",
	},
	"cloud": {
		"AWS", "GCP", "Azure", "Docker", "Kubernetes", "Terraform",
		"CloudFormation", "Serverless",
	},
	"tools": {
		"Git", "GitHub", "GitLab", "Jenkins", "CircleCI", "Travis CI", "Jira",
		"Confluence",
	},
	"soft_skills": {
		"Leadership", "Communication", "Problem Solving", "Team Collaboration",
		"Project Management", "Agile", "Scrum",
	},
}
