package models

import "time"

// Job source identifiers as they appear on persisted records.
const (
	SourceIndeedRSS = "Indeed RSS"
	SourceUSAJobs   = "USAJobs.gov"
	SourceManual    = "Manual"
)

// Source tags used as sourceId prefixes.
const (
	SourceTagIndeed  = "indeed"
	SourceTagUSAJobs = "usajobs"
	SourceTagManual  = "manual"
)

// Salary periods.
const (
	PeriodHourly  = "hourly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// Location represents a normalized job location
type Location struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Remote  bool   `json:"remote"`
	Hybrid  bool   `json:"hybrid"`
}

// Salary represents a normalized salary range
type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
	Period   string `json:"period"` // hourly, monthly, yearly
}

// JobCandidate is a job record produced by a source adapter or the HTML
// extractor before deduplication and persistence. Two candidates with the
// same (Source, SourceID) describe the same real posting.
type JobCandidate struct {
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	Description    string    `json:"description"`
	Skills         []string  `json:"skills"`
	Category       string    `json:"category"`
	RawLocation    string    `json:"raw_location,omitempty"`
	Location       Location  `json:"location"`
	Salary         *Salary   `json:"salary,omitempty"`
	SalaryRaw      string    `json:"salary_raw,omitempty"`
	JobType        string    `json:"job_type"`
	ApplicationURL string    `json:"application_url"`
	Source         string    `json:"source"`
	SourceID       string    `json:"source_id"`
	DatePosted     time.Time `json:"date_posted"`
}

// Job is a persisted job posting. Created once by the ingestion pipeline and
// never mutated by it afterwards.
type Job struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	Description    string    `json:"description"`
	Skills         []string  `json:"skills"`
	Category       string    `json:"category"`
	Location       Location  `json:"location"`
	Salary         *Salary   `json:"salary,omitempty"`
	JobType        string    `json:"job_type"`
	ApplicationURL string    `json:"application_url"`
	Source         string    `json:"source"`
	SourceID       string    `json:"source_id"`
	DatePosted     time.Time `json:"date_posted"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewJob builds a persisted Job from a candidate and its resolved company.
func NewJob(id, companyID string, c JobCandidate) *Job {
	now := time.Now().UTC()
	return &Job{
		ID:             id,
		CompanyID:      companyID,
		Title:          c.Title,
		CompanyName:    c.CompanyName,
		Description:    c.Description,
		Skills:         c.Skills,
		Category:       c.Category,
		Location:       c.Location,
		Salary:         c.Salary,
		JobType:        c.JobType,
		ApplicationURL: c.ApplicationURL,
		Source:         c.Source,
		SourceID:       c.SourceID,
		DatePosted:     c.DatePosted,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
