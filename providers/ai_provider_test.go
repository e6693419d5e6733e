package providers

import (
	"context"
	"io"
	"testing"

	"github.com/meysamhadeli/renamai/token_management"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := ResolveAPIKey(&AIProviderConfig{Provider: "openai"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "  sk-env  ")
	key, err := ResolveAPIKey(&AIProviderConfig{Provider: "OpenAI"})
	require.NoError(t, err)
	assert.Equal(t, "sk-env", key)

	key, err = ResolveAPIKey(&AIProviderConfig{Provider: "openai", ApiKey: "sk-config"})
	require.NoError(t, err)
	assert.Equal(t, "sk-config", key)

	_, err = ResolveAPIKey(&AIProviderConfig{Provider: "gemini"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	key, err = ResolveAPIKey(&AIProviderConfig{Provider: "ollama"})
	require.NoError(t, err)
	assert.Empty(t, key)

	_, err = ResolveAPIKey(&AIProviderConfig{Provider: "anthropic"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("openai"))
	assert.True(t, IsSupported("Gemini"))
	assert.True(t, IsSupported("ollama"))
	assert.False(t, IsSupported("azure"))
	assert.False(t, IsSupported(""))
}

func TestNewProvider_MissingKeyFailsBeforeBuilding(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	provider, err := NewProvider(context.Background(), &AIProviderConfig{Provider: "openai", MaxTokens: 50}, token_management.NewTokenManager(io.Discard))
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, provider)
}

func TestNewProvider_Names(t *testing.T) {
	tm := token_management.NewTokenManager(io.Discard)

	provider, err := NewProvider(context.Background(), &AIProviderConfig{Provider: "openai", ApiKey: "sk-test", MaxTokens: 50}, tm)
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-3.5-turbo", provider.Name())

	provider, err = NewProvider(context.Background(), &AIProviderConfig{Provider: "ollama", Model: "qwen2.5", MaxTokens: 50}, tm)
	require.NoError(t, err)
	assert.Equal(t, "ollama:qwen2.5", provider.Name())
}
