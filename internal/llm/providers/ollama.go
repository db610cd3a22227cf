package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/llm"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
)

// OllamaProvider implements the Provider interface against a local Ollama
// instance over its plain HTTP API.
type OllamaProvider struct {
	config     *config.Config
	httpClient *http.Client
	logger     types.Logger
}

// NewOllamaProvider creates a new Ollama provider instance
func NewOllamaProvider(cfg *config.Config) *OllamaProvider {
	return &OllamaProvider{
		config: cfg,
		// Per-call deadlines come from the caller's context; the client
		// itself carries no timeout.
		httpClient: &http.Client{},
		logger:     logging.GetGlobalLogger(),
	}
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	TopP        float32 `json:"top_p"`
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Complete sends the prompt to Ollama's /api/generate endpoint
func (op *OllamaProvider) Complete(ctx context.Context, prompt string, mode llm.Mode) (string, error) {
	if !op.Available() {
		return "", fmt.Errorf("%w: ollama URL not configured", llm.ErrProviderUnavailable)
	}

	temperature := op.config.LLM.ExtractionTemperature
	if mode == llm.ModeConversation {
		temperature = op.config.LLM.ConversationTemperature
	}

	reqBody := ollamaGenerateRequest{
		Model:  op.config.LLM.Ollama.Model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temperature,
			TopP:        0.9,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	url := op.config.LLM.Ollama.URL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	op.logger.Debug("Calling Ollama", map[string]interface{}{
		"model": op.config.LLM.Ollama.Model,
		"mode":  string(mode),
	})

	resp, err := op.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: ollama call exceeded deadline", llm.ErrProviderTimeout)
		}
		return "", fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ollamaGenerateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse ollama response: %w", err)
	}

	if parsed.Response == "" {
		return "", fmt.Errorf("empty completion from ollama")
	}

	return parsed.Response, nil
}

// Available reports whether an Ollama endpoint is configured
func (op *OllamaProvider) Available() bool {
	return op.config.LLM.Ollama.URL != ""
}

// Name returns the provider identifier
func (op *OllamaProvider) Name() string {
	return llm.ProviderOllama
}
