package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meysamhadeli/renamai/providers/models"
	"github.com/meysamhadeli/renamai/token_management"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletionRequest_Success(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "  Alien 3 (U).txt\n"}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 7}
		}`))
	}))
	defer server.Close()

	tm := token_management.NewTokenManager(io.Discard)
	provider := NewOpenAIChatProvider(&OpenAIConfig{
		BaseURL:         server.URL + "/v1/",
		ApiKey:          "sk-test",
		MaxTokens:       50,
		TokenManagement: tm,
	})

	messages := []models.Message{
		{Role: models.RoleSystem, Content: "rename"},
		{Role: models.RoleUser, Content: "574--lien 3 (U).txt"},
	}
	resp, err := provider.ChatCompletionRequest(context.Background(), messages)
	require.NoError(t, err)

	assert.Equal(t, "  Alien 3 (U).txt\n", resp.Content)
	assert.Equal(t, 120, resp.InputTokens)
	assert.Equal(t, 7, resp.OutputTokens)

	assert.Equal(t, defaultModel, got.Model)
	assert.Equal(t, 50, got.MaxTokens)
	assert.Nil(t, got.Temperature)
	assert.Equal(t, messages, got.Messages)

	total, input, output := tm.GetCurrentTokenUsage()
	assert.Equal(t, 127, total)
	assert.Equal(t, 120, input)
	assert.Equal(t, 7, output)
}

func TestChatCompletionRequest_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`))
	}))
	defer server.Close()

	provider := NewOpenAIChatProvider(&OpenAIConfig{BaseURL: server.URL, ApiKey: "bad"})
	_, err := provider.ChatCompletionRequest(context.Background(), []models.Message{{Role: models.RoleUser, Content: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestChatCompletionRequest_NoChoicesIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": [], "usage": {"prompt_tokens": 40, "completion_tokens": 0}}`))
	}))
	defer server.Close()

	tm := token_management.NewTokenManager(io.Discard)
	provider := NewOpenAIChatProvider(&OpenAIConfig{BaseURL: server.URL, ApiKey: "sk-test", Model: "gpt-4o-mini", TokenManagement: tm})
	resp, err := provider.ChatCompletionRequest(context.Background(), []models.Message{{Role: models.RoleUser, Content: "x"}})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "no choices")
	assert.Equal(t, "openai:gpt-4o-mini", provider.Name())

	total, _, _ := tm.GetCurrentTokenUsage()
	assert.Equal(t, 40, total)
}

func TestChatCompletionRequest_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := NewOpenAIChatProvider(&OpenAIConfig{BaseURL: server.URL, ApiKey: "sk-test"})
	_, err := provider.ChatCompletionRequest(ctx, []models.Message{{Role: models.RoleUser, Content: "x"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
