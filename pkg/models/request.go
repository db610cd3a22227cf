package models

// ExtractRequest represents the request payload for HTML job extraction
type ExtractRequest struct {
	HTML string `json:"html" validate:"required"`
}

// SaveRequest represents the request payload for persisting extracted records
type SaveRequest struct {
	Jobs      []JobCandidate     `json:"jobs" validate:"required"`
	Companies []CompanyCandidate `json:"companies"`
}

// IngestRequest represents the request payload for starting an ingestion run
type IngestRequest struct {
	Query    string `json:"query,omitempty"`
	Location string `json:"location,omitempty"`
}

// ProviderRequest represents a request to switch the active LLM provider
type ProviderRequest struct {
	Provider string `json:"provider" validate:"required"`
}

// ChatRequest represents a career advisor chat message
type ChatRequest struct {
	Message   string       `json:"message" validate:"required"`
	SessionID string       `json:"session_id,omitempty"`
	Context   *ChatContext `json:"context,omitempty"`
}

// ChatContext carries optional user background for advisor prompts
type ChatContext struct {
	Skills     []string `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
}
