package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/meysamhadeli/renamai/providers/contracts"
	"github.com/meysamhadeli/renamai/providers/models"
	contracts2 "github.com/meysamhadeli/renamai/token_management/contracts"
	genai "google.golang.org/genai"
)

// GeminiConfig implements the IChatAIProvider interface on top of the genai SDK.
type GeminiConfig struct {
	Model           string
	ApiKey          string
	MaxTokens       int
	Temperature     *float32
	TokenManagement contracts2.ITokenManagement

	client *genai.Client
}

const defaultModel = "gemini-2.5-flash"

// NewGeminiChatProvider creates the genai client. No request is sent until ChatCompletionRequest.
func NewGeminiChatProvider(ctx context.Context, config *GeminiConfig) (contracts.IChatAIProvider, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.ApiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating gemini client: %w", err)
	}
	model := config.Model
	if model == "" {
		model = defaultModel
	}
	return &GeminiConfig{
		Model:           model,
		ApiKey:          config.ApiKey,
		MaxTokens:       config.MaxTokens,
		Temperature:     config.Temperature,
		TokenManagement: config.TokenManagement,
		client:          cli,
	}, nil
}

func (geminiProvider *GeminiConfig) Name() string { return "gemini:" + geminiProvider.Model }

func (geminiProvider *GeminiConfig) ChatCompletionRequest(ctx context.Context, messages []models.Message) (*models.ChatResponse, error) {
	systemInstruction, contents := toGeminiContents(messages)

	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
		MaxOutputTokens:   int32(geminiProvider.MaxTokens),
		Temperature:       geminiProvider.Temperature,
	}

	resp, err := geminiProvider.client.Models.GenerateContent(ctx, geminiProvider.Model, contents, genConfig)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}

	response := &models.ChatResponse{}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		var sb strings.Builder
		for _, part := range resp.Candidates[0].Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		response.Content = sb.String()
	}
	if resp.UsageMetadata != nil {
		response.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		response.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	if geminiProvider.TokenManagement != nil && (response.InputTokens > 0 || response.OutputTokens > 0) {
		geminiProvider.TokenManagement.UsedTokens(response.InputTokens, response.OutputTokens)
	}

	return response, nil
}

// toGeminiContents maps a chat conversation onto Gemini's shape: the leading
// system messages become the system instruction, later system messages are
// sent as user turns and assistant turns use the "model" role.
func toGeminiContents(messages []models.Message) (*genai.Content, []*genai.Content) {
	var systemParts []*genai.Part
	var contents []*genai.Content
	leading := true

	for _, msg := range messages {
		if msg.Role == models.RoleSystem && leading {
			systemParts = append(systemParts, &genai.Part{Text: msg.Content})
			continue
		}
		leading = false

		role := string(genai.RoleUser)
		if msg.Role == models.RoleAssistant {
			role = string(genai.RoleModel)
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	if len(systemParts) == 0 {
		return nil, contents
	}
	return &genai.Content{Parts: systemParts}, contents
}
