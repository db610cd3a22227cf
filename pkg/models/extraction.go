package models

// Extraction is the result of running the HTML extractor over pasted markup:
// normalized job candidates plus the companies they reference.
type Extraction struct {
	Jobs      []JobCandidate     `json:"jobs"`
	Companies []CompanyCandidate `json:"companies"`
}
