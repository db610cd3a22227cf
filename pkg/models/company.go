package models

import "time"

// DefaultIndustry is assumed when a source gives no industry for a company.
const DefaultIndustry = "Information Technology"

// CompanyCandidate is a company record referenced by extracted jobs before
// persistence. Company identity is the exact name, case-sensitive.
type CompanyCandidate struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

// Company is a persisted company. Created lazily on first reference and never
// updated from later candidate data.
type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Industry    string    `json:"industry"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCompany builds a persisted Company from a candidate, filling defaults.
func NewCompany(id string, c CompanyCandidate) *Company {
	now := time.Now().UTC()
	industry := c.Industry
	if industry == "" {
		industry = DefaultIndustry
	}
	return &Company{
		ID:          id,
		Name:        c.Name,
		Industry:    industry,
		Location:    c.Location,
		Description: c.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
