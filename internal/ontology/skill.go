package ontology

import (
	"regexp"
	"strings"
)

// skillCanonical maps lowercase aliases to canonical skill names, preventing
// duplicates like "Python" vs "python3" in the graph.
var skillCanonical = map[string]string{
	// Python
	"python": "Python", "python3": "Python", "python 3": "Python",
	"python2": "Python", "python 2": "Python", "py": "Python",
	// JavaScript
	"javascript": "JavaScript", "js": "JavaScript", "ecmascript": "JavaScript",
	"es6": "JavaScript", "es2015": "JavaScript", "es2020": "JavaScript",
	"es2021": "JavaScript",
	// TypeScript
	"typescript": "TypeScript", "ts": "TypeScript",
	// React
	"react": "React", "reactjs": "React", "react.js": "React", "react js": "React",
	// Angular
	"angular": "Angular", "angularjs": "Angular", "angular.js": "Angular",
	"angular 2": "Angular",
	// Vue
	"vue": "Vue.js", "vuejs": "Vue.js", "vue.js": "Vue.js", "vue js": "Vue.js",
	"vue 3": "Vue.js",
	// Node.js
	"node": "Node.js", "nodejs": "Node.js", "node.js": "Node.js", "node js": "Node.js",
	// Express
	"express": "Express.js", "expressjs": "Express.js", "express.js": "Express.js",
	// Next.js
	"next": "Next.js", "nextjs": "Next.js", "next.js": "Next.js",
	// Django
	"django": "Django", "django rest framework": "Django", "drf": "Django REST Framework",
	// FastAPI
	"fastapi": "FastAPI", "fast api": "FastAPI",
	// Flask
	"flask": "Flask",
	// Spring
	"spring": "Spring", "spring boot": "Spring Boot", "springboot": "Spring Boot",
	// AWS
	"aws": "AWS", "amazon web services": "AWS", "amazon aws": "AWS",
	// GCP
	"gcp": "GCP", "google cloud": "GCP", "google cloud platform": "GCP",
	// Azure
	"azure": "Azure", "microsoft azure": "Azure", "ms azure": "Azure",
	// Docker
	"docker": "Docker", "docker compose": "Docker Compose", "docker-compose": "Docker Compose",
	// Kubernetes
	"kubernetes": "Kubernetes", "k8s": "Kubernetes", "kube": "Kubernetes",
	// Databases
	"postgresql": "PostgreSQL", "postgres": "PostgreSQL", "psql": "PostgreSQL",
	"pg":    "PostgreSQL",
	"mysql": "MySQL", "my sql": "MySQL",
	"mongodb": "MongoDB", "mongo": "MongoDB", "mongo db": "MongoDB",
	"redis":         "Redis",
	"elasticsearch": "Elasticsearch", "elastic search": "Elasticsearch",
	"elastic":  "Elasticsearch",
	"dynamodb": "DynamoDB", "dynamo db": "DynamoDB", "dynamo": "DynamoDB",
	"cassandra": "Cassandra",
	"sqlite":    "SQLite", "sql lite": "SQLite",
	// Java
	"java": "Java", "java 8": "Java", "java 11": "Java", "java 17": "Java",
	// Go
	"go": "Go", "golang": "Go",
	// Rust
	"rust": "Rust", "rustlang": "Rust",
	// C++
	"c++": "C++", "cpp": "C++", "cplusplus": "C++",
	// C#
	"c#": "C#", "csharp": "C#", "c sharp": "C#",
	// .NET
	".net": ".NET", "dotnet": ".NET", "dot net": ".NET",
	".net core": ".NET Core", "dotnet core": ".NET Core",
	// Ruby
	"ruby": "Ruby", "ruby on rails": "Ruby on Rails", "rails": "Ruby on Rails",
	"ror": "Ruby on Rails",
	// PHP
	"php": "PHP", "laravel": "Laravel",
	// Git hosting
	"git": "Git", "github": "GitHub", "gitlab": "GitLab", "bitbucket": "Bitbucket",
	// CI/CD
	"jenkins": "Jenkins", "circleci": "CircleCI", "circle ci": "CircleCI",
	"travis ci": "Travis CI", "travisci": "Travis CI",
	"github actions": "GitHub Actions",
	// Terraform
	"terraform": "Terraform", "tf": "Terraform",
	// ML
	"machine learning": "Machine Learning", "ml": "Machine Learning",
	"deep learning": "Deep Learning", "dl": "Deep Learning",
	"tensorflow": "TensorFlow",
	"pytorch":    "PyTorch", "torch": "PyTorch",
	"keras":        "Keras",
	"scikit-learn": "Scikit-learn", "sklearn": "Scikit-learn",
	// Data
	"data science":  "Data Science",
	"data analysis": "Data Analysis",
	"pandas":        "Pandas",
	"numpy":         "NumPy",
	"matplotlib":    "Matplotlib",
	// Soft skills
	"leadership":      "Leadership",
	"communication":   "Communication",
	"problem solving": "Problem Solving", "problem-solving": "Problem Solving",
	"teamwork": "Team Collaboration", "team work": "Team Collaboration",
	"collaboration": "Team Collaboration", "team collaboration": "Team Collaboration",
	"project management": "Project Management", "pm": "Project Management",
	"agile": "Agile", "scrum": "Scrum", "kanban": "Kanban",
}

var (
	skillStripRe = regexp.MustCompile(`[^\w\s\.\+\#\-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeSkill maps a raw skill mention to its canonical name and category.
// Unknown skills fall back to title case with an empty category.
func NormalizeSkill(name string) (canonical, category string) {
	if name == "" {
		return name, ""
	}

	cleaned := strings.ToLower(strings.TrimSpace(name))
	cleaned = skillStripRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))

	if c, ok := skillCanonical[cleaned]; ok {
		canonical = c
	} else {
		canonical = titleCase(strings.TrimSpace(name))
	}

	return canonical, SkillCategory(canonical)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// SkillCategory returns the category of a canonical skill name, or "".
func SkillCategory(canonical string) string {
	for cat, skills := range SkillCategories {
		for _, s := range skills {
			if s == canonical {
				return cat
			}
		}
	}
	return ""
}

// SkillAliases lists known aliases of a canonical skill (canonical excluded).
func SkillAliases(canonical string) []string {
	var aliases []string
	for alias, c := range skillCanonical {
		if c == canonical && alias != strings.ToLower(canonical) {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}

// KnownSkill reports whether the name resolves through the canonical map.
func KnownSkill(name string) bool {
	_, ok := skillCanonical[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
