package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/llm"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
)

const (
	extractionSystemPrompt   = "You are a job data extraction assistant. Return only valid JSON."
	conversationSystemPrompt = "You are an experienced job hunter and career advisor. Ask clarifying questions when needed, think step-by-step, and provide practical advice from a job seeker's perspective. Be conversational and empathetic."
)

// ClaudeProvider implements the Provider interface using Anthropic's Claude
// as the hosted backend.
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger types.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.Claude.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Complete sends the prompt to the Claude Messages API
func (cp *ClaudeProvider) Complete(ctx context.Context, prompt string, mode llm.Mode) (string, error) {
	if !cp.Available() {
		return "", fmt.Errorf("%w: claude API key not configured", llm.ErrProviderUnavailable)
	}

	system := extractionSystemPrompt
	temperature := cp.config.LLM.ExtractionTemperature
	if mode == llm.ModeConversation {
		system = conversationSystemPrompt
		temperature = cp.config.LLM.ConversationTemperature
	}

	cp.logger.Debug("Calling Claude", map[string]interface{}{
		"model": cp.config.LLM.Claude.Model,
		"mode":  string(mode),
	})

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Claude.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(temperature)),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: claude call exceeded deadline", llm.ErrProviderTimeout)
		}
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	if responseText == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	return responseText, nil
}

// Available reports whether a Claude API key is configured
func (cp *ClaudeProvider) Available() bool {
	return cp.config.LLM.Claude.APIKey != ""
}

// Name returns the provider identifier
func (cp *ClaudeProvider) Name() string {
	return llm.ProviderClaude
}
