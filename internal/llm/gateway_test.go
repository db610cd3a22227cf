package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhound-ingest/internal/config"
)

type stubProvider struct {
	name      string
	text      string
	err       error
	available bool
	calls     int
}

func (s *stubProvider) Complete(ctx context.Context, prompt string, mode Mode) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubProvider) Available() bool { return s.available }
func (s *stubProvider) Name() string    { return s.name }

func testConfig() *config.Config {
	cfg, _ := config.LoadConfig("")
	return cfg
}

func TestGenerateUsesActiveProvider(t *testing.T) {
	local := &stubProvider{name: ProviderOllama, text: "local answer", available: true}
	cloud := &stubProvider{name: ProviderClaude, text: "cloud answer", available: true}

	g := NewGateway(testConfig(), local, cloud)

	result, err := g.Generate(context.Background(), "prompt", ModeExtraction)
	require.NoError(t, err)
	assert.Equal(t, "local answer", result.Text)
	assert.Equal(t, ProviderOllama, result.Provider)
	assert.Equal(t, 0, cloud.calls)
}

func TestGenerateExtractionFallsBack(t *testing.T) {
	local := &stubProvider{name: ProviderOllama, err: errors.New("connection refused"), available: true}
	cloud := &stubProvider{name: ProviderClaude, text: "cloud answer", available: true}

	g := NewGateway(testConfig(), local, cloud)

	result, err := g.Generate(context.Background(), "prompt", ModeExtraction)
	require.NoError(t, err)
	assert.Equal(t, "cloud answer", result.Text)
	assert.Equal(t, ProviderClaude, result.Provider, "result reports the provider that actually answered")
	assert.Equal(t, 1, local.calls)
	assert.Equal(t, 1, cloud.calls)
}

func TestGenerateExtractionBothFail(t *testing.T) {
	local := &stubProvider{name: ProviderOllama, err: errors.New("down"), available: true}
	cloud := &stubProvider{name: ProviderClaude, err: errors.New("also down"), available: true}

	g := NewGateway(testConfig(), local, cloud)

	_, err := g.Generate(context.Background(), "prompt", ModeExtraction)
	require.Error(t, err)
	assert.Equal(t, 1, local.calls)
	assert.Equal(t, 1, cloud.calls)
}

func TestGenerateConversationNeverFallsBack(t *testing.T) {
	local := &stubProvider{name: ProviderOllama, err: errors.New("down"), available: true}
	cloud := &stubProvider{name: ProviderClaude, text: "cloud answer", available: true}

	g := NewGateway(testConfig(), local, cloud)

	_, err := g.Generate(context.Background(), "prompt", ModeConversation)
	require.Error(t, err)
	assert.Equal(t, 0, cloud.calls, "conversation mode must not switch providers")
}

func TestSetProvider(t *testing.T) {
	local := &stubProvider{name: ProviderOllama, text: "local", available: true}
	cloud := &stubProvider{name: ProviderClaude, text: "cloud", available: true}

	g := NewGateway(testConfig(), local, cloud)

	require.NoError(t, g.SetProvider(ProviderClaude))
	assert.Equal(t, ProviderClaude, g.ActiveProvider())

	result, err := g.Generate(context.Background(), "prompt", ModeExtraction)
	require.NoError(t, err)
	assert.Equal(t, "cloud", result.Text)

	err = g.SetProvider("gpt4")
	assert.ErrorIs(t, err, ErrInvalidProvider)
	assert.Equal(t, ProviderClaude, g.ActiveProvider(), "failed switch leaves the active provider unchanged")
}

func TestAvailability(t *testing.T) {
	local := &stubProvider{name: ProviderOllama, available: true}
	cloud := &stubProvider{name: ProviderClaude, available: false}

	g := NewGateway(testConfig(), local, cloud)

	avail := g.Availability()
	assert.True(t, avail[ProviderOllama])
	assert.False(t, avail[ProviderClaude])
	assert.Equal(t, 0, local.calls, "availability must not make network calls")
	assert.True(t, g.Usable())
}
