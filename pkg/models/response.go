package models

import "time"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ExtractResponse represents the response from an HTML extraction request
type ExtractResponse struct {
	Success        bool          `json:"success"`
	Data           *Extraction   `json:"data,omitempty"`
	Provider       string        `json:"provider,omitempty"`
	ProcessingTime time.Duration `json:"processing_time"`
	RequestID      string        `json:"request_id"`
}

// SaveResponse represents the response from persisting extracted records
type SaveResponse struct {
	Success          bool   `json:"success"`
	JobsCreated      int    `json:"jobs_created"`
	CompaniesCreated int    `json:"companies_created"`
	JobsSkipped      int    `json:"jobs_skipped"`
	RequestID        string `json:"request_id"`
}

// ProviderResponse reports the active LLM provider and per-provider availability
type ProviderResponse struct {
	Provider  string          `json:"provider"`
	Available map[string]bool `json:"available"`
}

// ChatResponse represents a career advisor reply
type ChatResponse struct {
	Type      string      `json:"type"` // "text" or "job_extraction"
	Response  string      `json:"response"`
	Data      *Extraction `json:"data,omitempty"`
	SessionID string      `json:"session_id"`
}

// AcceptedResponse is returned when a background task has been queued
type AcceptedResponse struct {
	ProcessID string    `json:"processId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
