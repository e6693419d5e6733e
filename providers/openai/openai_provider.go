package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/meysamhadeli/renamai/providers/contracts"
	"github.com/meysamhadeli/renamai/providers/models"
	contracts2 "github.com/meysamhadeli/renamai/token_management/contracts"
)

// OpenAIConfig implements the IChatAIProvider interface for OpenAI-compatible chat APIs.
type OpenAIConfig struct {
	BaseURL         string
	Model           string
	ApiKey          string
	MaxTokens       int
	Temperature     *float32
	TokenManagement contracts2.ITokenManagement
	HTTPClient      *http.Client
}

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
)

type chatCompletionRequest struct {
	Model       string           `json:"model"`
	Messages    []models.Message `json:"messages"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Temperature *float32         `json:"temperature,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// NewOpenAIChatProvider initializes a new OpenAI chat provider.
func NewOpenAIChatProvider(config *OpenAIConfig) contracts.IChatAIProvider {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &OpenAIConfig{
		BaseURL:         baseURL,
		Model:           model,
		ApiKey:          config.ApiKey,
		MaxTokens:       config.MaxTokens,
		Temperature:     config.Temperature,
		TokenManagement: config.TokenManagement,
		HTTPClient:      client,
	}
}

func (openAIProvider *OpenAIConfig) Name() string { return "openai:" + openAIProvider.Model }

func (openAIProvider *OpenAIConfig) ChatCompletionRequest(ctx context.Context, messages []models.Message) (*models.ChatResponse, error) {
	reqBody := chatCompletionRequest{
		Model:       openAIProvider.Model,
		Messages:    messages,
		MaxTokens:   openAIProvider.MaxTokens,
		Temperature: openAIProvider.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/chat/completions", openAIProvider.BaseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+openAIProvider.ApiKey)

	resp, err := openAIProvider.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("request canceled: %w", err)
		}
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiError models.AIError
		if err := json.Unmarshal(body, &apiError); err != nil || apiError.Error.Message == "" {
			return nil, fmt.Errorf("API request failed with status code '%d'", resp.StatusCode)
		}
		return nil, fmt.Errorf("API request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("error unmarshalling response: %w", err)
	}

	response := &models.ChatResponse{
		InputTokens:  completion.Usage.PromptTokens,
		OutputTokens: completion.Usage.CompletionTokens,
	}

	if openAIProvider.TokenManagement != nil && (response.InputTokens > 0 || response.OutputTokens > 0) {
		openAIProvider.TokenManagement.UsedTokens(response.InputTokens, response.OutputTokens)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("API response contained no choices")
	}
	response.Content = completion.Choices[0].Message.Content

	return response, nil
}
