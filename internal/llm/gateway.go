package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobhound-ingest/internal/config"
	"jobhound-ingest/internal/logging"
	"jobhound-ingest/internal/logging/types"
)

// Gateway produces text completions from one of two interchangeable
// providers, with runtime switching of the active provider and automatic
// fallback to the other provider for extraction calls.
//
// The active provider is instance state behind a lock rather than a
// process-wide variable; switching happens only through SetProvider.
type Gateway struct {
	config    *config.Config
	providers map[string]Provider
	active    string
	logger    types.Logger
	mu        sync.RWMutex
}

// NewGateway creates a gateway over the given providers. The initially
// active provider comes from configuration and falls back to ollama when the
// configured name is unknown.
func NewGateway(cfg *config.Config, provs ...Provider) *Gateway {
	byName := make(map[string]Provider, len(provs))
	for _, p := range provs {
		byName[p.Name()] = p
	}

	active := cfg.LLM.Provider
	if _, ok := byName[active]; !ok {
		active = ProviderOllama
	}

	return &Gateway{
		config:    cfg,
		providers: byName,
		active:    active,
		logger:    logging.GetGlobalLogger(),
	}
}

// Generate sends the prompt to the active provider. In extraction mode a
// failed call is retried exactly once against the other provider, strictly
// sequentially. Conversation mode never falls back; the caller owns its own
// degraded behavior.
func (g *Gateway) Generate(ctx context.Context, prompt string, mode Mode) (*GenerateResult, error) {
	primary := g.ActiveProvider()

	timeout := g.config.LLM.ExtractionTimeout
	if mode == ModeConversation {
		timeout = g.config.LLM.ConversationTimeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	text, err := g.providers[primary].Complete(callCtx, prompt, mode)
	if err == nil {
		g.logger.Debug("Completion produced", map[string]interface{}{
			"provider": primary,
			"mode":     string(mode),
			"duration": time.Since(start).String(),
		})
		return &GenerateResult{Text: text, Provider: primary}, nil
	}

	if mode != ModeExtraction {
		return nil, err
	}

	secondary := g.otherProvider(primary)
	g.logger.Warn("Active provider failed, retrying with fallback", map[string]interface{}{
		"provider": primary,
		"fallback": secondary,
		"error":    err.Error(),
	})

	fallbackCtx, cancelFallback := context.WithTimeout(ctx, timeout)
	defer cancelFallback()

	text, fbErr := g.providers[secondary].Complete(fallbackCtx, prompt, mode)
	if fbErr != nil {
		return nil, fmt.Errorf("both providers failed: %s: %v; %s: %w", primary, err, secondary, fbErr)
	}

	return &GenerateResult{Text: text, Provider: secondary}, nil
}

// SetProvider switches the active provider. Returns ErrInvalidProvider for
// names outside the recognized set.
func (g *Gateway) SetProvider(name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.providers[name]; !ok {
		return fmt.Errorf("%w: %q (use %q or %q)", ErrInvalidProvider, name, ProviderOllama, ProviderClaude)
	}

	g.active = name
	g.logger.Info("Switched LLM provider", map[string]interface{}{"provider": name})
	return nil
}

// ActiveProvider returns the name of the currently active provider
func (g *Gateway) ActiveProvider() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.active
}

// Availability reports, per provider, whether the credentials/endpoint
// needed to use it are configured. No network calls are made.
func (g *Gateway) Availability() map[string]bool {
	avail := make(map[string]bool, len(g.providers))
	for name, p := range g.providers {
		avail[name] = p.Available()
	}
	return avail
}

// Usable reports whether at least one provider is configured; without any
// the HTML-extraction path cannot operate at all.
func (g *Gateway) Usable() bool {
	for _, p := range g.providers {
		if p.Available() {
			return true
		}
	}
	return false
}

func (g *Gateway) otherProvider(name string) string {
	for candidate := range g.providers {
		if candidate != name {
			return candidate
		}
	}
	return name
}
