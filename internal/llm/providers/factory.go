package providers

import (
	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/llm"
)

// NewGateway builds the provider gateway with both configured backends: the
// local Ollama instance and the hosted Claude API.
func NewGateway(cfg *config.Config) *llm.Gateway {
	return llm.NewGateway(cfg, NewOllamaProvider(cfg), NewClaudeProvider(cfg))
}
