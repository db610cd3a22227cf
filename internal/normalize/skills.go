package normalize

import "strings"

// SkillVocabulary is the curated set of technical skills recognized across
// all sources. Matches are reported in vocabulary order, not appearance
// order.
var SkillVocabulary = []string{
	"JavaScript", "Python", "Java", "React", "Node.js", "SQL", "HTML", "CSS",
	"Git", "AWS", "Docker", "MongoDB", "PostgreSQL", "TypeScript", "Vue.js",
	"Angular", "Express", "Django", "Flask", "Spring", "Kubernetes", "Redis",
	"GraphQL", "REST API", "Microservices", "DevOps", "CI/CD", "Jenkins",
	"Terraform", "Linux", "Bash", "Azure", "GCP", "C++", "C#", ".NET", "Go", "Rust",
}

// ExtractSkills returns the vocabulary entries found in the text by
// case-insensitive substring match.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range SkillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}
