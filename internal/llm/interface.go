package llm

import (
	"context"
	"errors"
)

// Mode selects the completion profile for a Generate call.
type Mode string

const (
	// ModeExtraction requests low-temperature, JSON-biased output and is
	// subject to cross-provider fallback.
	ModeExtraction Mode = "extraction"

	// ModeConversation requests higher-temperature free text; callers supply
	// their own fallback, the gateway never switches providers for it.
	ModeConversation Mode = "conversation"
)

// Recognized provider identifiers.
const (
	ProviderOllama = "ollama"
	ProviderClaude = "claude"
)

var (
	// ErrInvalidProvider is returned for a provider name that is not one of
	// the two recognized identifiers.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrProviderTimeout is returned when a completion call exceeds its
	// mode's deadline.
	ErrProviderTimeout = errors.New("provider timeout")

	// ErrProviderUnavailable is returned when a provider lacks the
	// credentials or endpoint needed to serve a call.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// Provider is a single text-completion backend.
type Provider interface {
	// Complete sends the prompt and returns the raw completion text.
	Complete(ctx context.Context, prompt string, mode Mode) (string, error)

	// Available reports whether the provider has the credentials/endpoint it
	// needs, without making a network call.
	Available() bool

	// Name returns the provider identifier.
	Name() string
}

// GenerateResult is a completion plus the provider that actually answered,
// which may differ from the active provider after a fallback.
type GenerateResult struct {
	Text     string
	Provider string
}
