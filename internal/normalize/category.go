package normalize

import "strings"

// DefaultCategory is assigned when no rule matches.
const DefaultCategory = "Software Development"

// CategoryRule pairs a category with the keywords that select it.
type CategoryRule struct {
	Category string
	Keywords []string
}

// CategoryRules is evaluated in order against the combined lowercased title
// and description; the first matching rule wins, so the slice ordering is
// the priority list. Do not reorder without checking the overlapping
// keywords ("ui" also selects UI/UX Design, "cloud" overlaps DevOps text).
var CategoryRules = []CategoryRule{
	{"Frontend Development", []string{"frontend", "front-end", "react", "vue", "angular", "ui"}},
	{"Backend Development", []string{"backend", "back-end", "api", "server", "node.js"}},
	{"Full Stack Development", []string{"full stack", "fullstack", "full-stack"}},
	{"Mobile Development", []string{"mobile", "ios", "android", "react native", "flutter"}},
	{"DevOps", []string{"devops", "sre", "infrastructure", "kubernetes", "docker"}},
	{"Data Science", []string{"data scientist", "data analyst", "analytics"}},
	{"Machine Learning", []string{"machine learning", "ml engineer", "ai engineer", "deep learning"}},
	{"Cybersecurity", []string{"security", "cybersecurity", "infosec"}},
	{"Cloud Engineering", []string{"cloud", "aws", "azure", "gcp"}},
	{"QA Testing", []string{"qa", "test", "quality assurance"}},
	{"Product Management", []string{"product manager", "pm", "product owner"}},
	{"UI/UX Design", []string{"ui", "ux", "design", "designer"}},
}

// CategorizeJob assigns a category from the ordered rule list, matching
// keywords against the lowercased title and description combined.
func CategorizeJob(title, description string) string {
	text := strings.ToLower(title + " " + description)

	for _, rule := range CategoryRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Category
			}
		}
	}

	return DefaultCategory
}
