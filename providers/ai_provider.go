package providers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/meysamhadeli/renamai/providers/contracts"
	"github.com/meysamhadeli/renamai/providers/gemini"
	"github.com/meysamhadeli/renamai/providers/ollama"
	"github.com/meysamhadeli/renamai/providers/openai"
	contracts2 "github.com/meysamhadeli/renamai/token_management/contracts"
)

// ErrMissingAPIKey is returned when no credential is configured for the selected provider.
var ErrMissingAPIKey = errors.New("API key not found")

// AIProviderConfig holds the settings of the model that suggests filenames.
type AIProviderConfig struct {
	Provider    string   `mapstructure:"provider"`
	BaseURL     string   `mapstructure:"base_url"`
	Model       string   `mapstructure:"model"`
	MaxTokens   int      `mapstructure:"max_tokens"`
	Temperature *float32 `mapstructure:"temperature"`
	ApiKey      string   `mapstructure:"api_key"`
}

// apiKeyEnv maps each supported provider to the environment variable holding its
// credential. An empty value means the provider runs without one.
var apiKeyEnv = map[string]string{
	"openai": "OPENAI_API_KEY",
	"gemini": "GEMINI_API_KEY",
	"ollama": "",
}

// IsSupported reports whether name is a provider NewProvider can build.
func IsSupported(name string) bool {
	_, ok := apiKeyEnv[strings.ToLower(name)]
	return ok
}

// APIKeyEnv returns the environment variable consulted for the provider's credential.
func APIKeyEnv(name string) string {
	return apiKeyEnv[strings.ToLower(name)]
}

// ResolveAPIKey returns the configured key, falling back to the provider's environment variable.
func ResolveAPIKey(config *AIProviderConfig) (string, error) {
	if key := strings.TrimSpace(config.ApiKey); key != "" {
		return key, nil
	}
	if !IsSupported(config.Provider) {
		return "", fmt.Errorf("unsupported provider %q", config.Provider)
	}
	env := APIKeyEnv(config.Provider)
	if env == "" {
		return "", nil
	}
	if key := strings.TrimSpace(os.Getenv(env)); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: please set the %s environment variable", ErrMissingAPIKey, env)
}

// NewProvider builds the chat provider selected in config. The credential is
// resolved first so that a missing key fails before any request is attempted.
func NewProvider(ctx context.Context, config *AIProviderConfig, tokenManagement contracts2.ITokenManagement) (contracts.IChatAIProvider, error) {
	apiKey, err := ResolveAPIKey(config)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(config.Provider) {
	case "openai":
		return openai.NewOpenAIChatProvider(&openai.OpenAIConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			ApiKey:          apiKey,
			MaxTokens:       config.MaxTokens,
			Temperature:     config.Temperature,
			TokenManagement: tokenManagement,
		}), nil
	case "gemini":
		return gemini.NewGeminiChatProvider(ctx, &gemini.GeminiConfig{
			Model:           config.Model,
			ApiKey:          apiKey,
			MaxTokens:       config.MaxTokens,
			Temperature:     config.Temperature,
			TokenManagement: tokenManagement,
		})
	case "ollama":
		return ollama.NewOllamaChatProvider(&ollama.OllamaConfig{
			BaseURL:         config.BaseURL,
			Model:           config.Model,
			MaxTokens:       config.MaxTokens,
			Temperature:     config.Temperature,
			TokenManagement: tokenManagement,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", config.Provider)
	}
}
