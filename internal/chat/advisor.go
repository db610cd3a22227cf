// Package chat implements the career advisor conversation surface. Messages
// that look like HTML short-circuit into the extraction pipeline; everything
// else goes to the LLM with the session's recent transcript, degrading to
// rule-based replies when no provider answers.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/llm"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
	"jobhound-ingest/pkg/models"
	"jobhound-ingest/pkg/utils"
)

// PageExtractor is the slice of the extractor the advisor needs for the
// HTML short-circuit.
type PageExtractor interface {
	Extract(ctx context.Context, html string) (*models.Extraction, string, error)
}

// Advisor answers career questions over a session transcript.
type Advisor struct {
	config    *config.Config
	gateway   *llm.Gateway
	extractor PageExtractor
	history   History
	logger    types.Logger
}

// NewAdvisor creates a career advisor
func NewAdvisor(cfg *config.Config, gateway *llm.Gateway, extractor PageExtractor, history History) *Advisor {
	return &Advisor{
		config:    cfg,
		gateway:   gateway,
		extractor: extractor,
		history:   history,
		logger:    logging.GetGlobalLogger(),
	}
}

// Handle processes one chat message and returns the advisor's reply. The
// LLM failing is not an error: the advisor falls back to rule-based
// responses so the conversation never dead-ends.
func (a *Advisor) Handle(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = utils.GenerateRequestID()
	}

	if looksLikeHTML(req.Message) {
		return a.handleExtraction(ctx, req.Message, sessionID)
	}

	recent, err := a.history.Recent(ctx, sessionID, a.config.Chat.HistoryWindow)
	if err != nil {
		a.logger.Warn("Failed to load session transcript, continuing without it", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		recent = nil
	}

	if err := a.history.Append(ctx, sessionID, Message{
		Role:      "user",
		Content:   req.Message,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		a.logger.Warn("Failed to record user message", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	prompt := buildAdvisorPrompt(req.Message, req.Context, recent)

	var reply string
	result, err := a.gateway.Generate(ctx, prompt, llm.ModeConversation)
	if err != nil {
		a.logger.Warn("LLM unavailable for chat, using rule-based response", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		reply = fallbackResponse(req.Message)
	} else {
		reply = strings.TrimSpace(result.Text)
		if reply == "" {
			reply = fallbackResponse(req.Message)
		}
	}

	if err := a.history.Append(ctx, sessionID, Message{
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now().UTC(),
	}); err != nil {
		a.logger.Warn("Failed to record assistant message", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return &models.ChatResponse{
		Type:      "text",
		Response:  reply,
		SessionID: sessionID,
	}, nil
}

func (a *Advisor) handleExtraction(ctx context.Context, html, sessionID string) (*models.ChatResponse, error) {
	extraction, _, err := a.extractor.Extract(ctx, html)
	if err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Type: "job_extraction",
		Response: fmt.Sprintf("I found %d jobs and %d companies. Would you like to save them to the database?",
			len(extraction.Jobs), len(extraction.Companies)),
		Data:      extraction,
		SessionID: sessionID,
	}, nil
}

// looksLikeHTML reports whether a message is pasted page markup rather than
// conversation.
func looksLikeHTML(message string) bool {
	return strings.Contains(message, "<") && strings.Contains(message, ">")
}

func buildAdvisorPrompt(message string, userContext *models.ChatContext, recent []Message) string {
	skills := "Not provided"
	experience := "Not provided"
	if userContext != nil {
		if len(userContext.Skills) > 0 {
			skills = strings.Join(userContext.Skills, ", ")
		}
		if userContext.Experience != "" {
			experience = userContext.Experience
		}
	}

	var transcript strings.Builder
	for _, msg := range recent {
		transcript.WriteString(msg.Role)
		transcript.WriteString(": ")
		transcript.WriteString(msg.Content)
		transcript.WriteString("\n")
	}

	return fmt.Sprintf(`You are an experienced job hunter and career advisor AI assistant.

IMPORTANT INSTRUCTIONS:
1. First, ask any clarifying questions you need to provide the best advice
2. Think step-by-step before responding
3. Draw from your experience as a job seeker to give practical, actionable advice
4. Be conversational and empathetic

User Context:
- Skills: %s
- Experience: %s

Conversation History (last %d messages):
%s
User Message: %s

Think through this step-by-step:
1. What information do I need to clarify?
2. What's the core problem or question?
3. What practical advice can I give based on my job hunting experience?

Provide a helpful, concise response.`, skills, experience, len(recent), transcript.String(), message)
}
