package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meysamhadeli/renamai/constants/lipgloss"
	"github.com/meysamhadeli/renamai/providers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EligibilityRule decides whether files matching Pattern are processed (Exclude=false)
// or left alone (Exclude=true).
type EligibilityRule struct {
	Pattern     string `mapstructure:"pattern"`
	Description string `mapstructure:"description"`
	Exclude     bool   `mapstructure:"exclude"`
}

// Example is a few-shot demonstration sent with every suggestion request.
// Both sides may contain the {extension} placeholder.
type Example struct {
	User      string `mapstructure:"user"`
	Assistant string `mapstructure:"assistant"`
}

// Config represents the structure of the configuration file
type Config struct {
	Version            string                      `mapstructure:"version"`
	Theme              string                      `mapstructure:"theme"`
	SystemPrompt       string                      `mapstructure:"system_prompt"`
	Examples           []Example                   `mapstructure:"examples"`
	EligibilityRules   []EligibilityRule           `mapstructure:"eligibility_rules"`
	RequireAllRules    bool                        `mapstructure:"require_all_rules"`
	MaxDuplicateSuffix int                         `mapstructure:"max_duplicate_suffix"`
	DryRun             bool                        `mapstructure:"dry_run"`
	Interactive        bool                        `mapstructure:"interactive"`
	LogFile            string                      `mapstructure:"log_file"`
	LogLevel           string                      `mapstructure:"log_level"`
	AIProviderConfig   *providers.AIProviderConfig `mapstructure:"ai_provider_config"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:      "1.0.0",
	Theme:        "dracula",
	SystemPrompt: "You are QAing a list of file names of video games with the extension {extension}. Please remove the numeric prefix and correct any issues, returning the name of the new file.",
	Examples: []Example{
		{User: "574--lien 3 (U){extension}", Assistant: "Alien 3 (U){extension}"},
		{User: "400--Home Alone 2 - Lost in New York(1){extension}", Assistant: "Home Alone 2 - Lost in New York (1){extension}"},
		{User: "007 Animal kingdom mobilization{extension}", Assistant: "Animal Kingdom Mobilization{extension}"},
	},
	EligibilityRules: []EligibilityRule{
		{Pattern: `^\d+`, Description: "Files that start with numbers", Exclude: false},
		{Pattern: `^duplicate--`, Description: "Files that start with 'duplicate--'", Exclude: true},
	},
	RequireAllRules:    false,
	MaxDuplicateSuffix: 1000,
	DryRun:             false,
	Interactive:        false,
	LogFile:            "",
	LogLevel:           "info",
	AIProviderConfig: &providers.AIProviderConfig{
		Provider:    "openai",
		BaseURL:     "",
		Model:       "",
		MaxTokens:   50,
		Temperature: nil,
		ApiKey:      "",
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

const configName = "renamai-config"

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	var config *Config

	setDefaults()

	viper.AutomaticEnv()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if fileType := GetConfigFileType(cfgFile); fileType != "" {
			viper.SetConfigType(fileType)
		}
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else if path := findConfigFile(cwd); path != "" {
		viper.SetConfigFile(path)
		viper.SetConfigType(GetConfigFileType(path))
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	} else {
		fmt.Println(lipgloss.Yellow.Render("No configuration file found, using defaults"))
	}

	if rootCmd != nil {
		bindFlags(rootCmd)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate reports configuration values that would make a run meaningless.
func (c *Config) Validate() error {
	var errs []error
	if c.AIProviderConfig == nil {
		errs = append(errs, errors.New("ai_provider_config is required"))
	} else {
		if !providers.IsSupported(c.AIProviderConfig.Provider) {
			errs = append(errs, fmt.Errorf("unsupported provider %q", c.AIProviderConfig.Provider))
		}
		if c.AIProviderConfig.MaxTokens <= 0 {
			errs = append(errs, fmt.Errorf("max_tokens must be positive, got %d", c.AIProviderConfig.MaxTokens))
		}
	}
	if strings.TrimSpace(c.SystemPrompt) == "" {
		errs = append(errs, errors.New("system_prompt must not be empty"))
	}
	if c.MaxDuplicateSuffix <= 0 {
		errs = append(errs, fmt.Errorf("max_duplicate_suffix must be positive, got %d", c.MaxDuplicateSuffix))
	}
	for i, rule := range c.EligibilityRules {
		if rule.Pattern == "" {
			errs = append(errs, fmt.Errorf("eligibility_rules[%d]: empty pattern", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("theme", DefaultConfig.Theme)
	viper.SetDefault("system_prompt", DefaultConfig.SystemPrompt)
	viper.SetDefault("examples", DefaultConfig.Examples)
	viper.SetDefault("eligibility_rules", DefaultConfig.EligibilityRules)
	viper.SetDefault("require_all_rules", DefaultConfig.RequireAllRules)
	viper.SetDefault("max_duplicate_suffix", DefaultConfig.MaxDuplicateSuffix)
	viper.SetDefault("dry_run", DefaultConfig.DryRun)
	viper.SetDefault("interactive", DefaultConfig.Interactive)
	viper.SetDefault("log_file", DefaultConfig.LogFile)
	viper.SetDefault("log_level", DefaultConfig.LogLevel)
	viper.SetDefault("ai_provider_config.provider", DefaultConfig.AIProviderConfig.Provider)
	viper.SetDefault("ai_provider_config.base_url", DefaultConfig.AIProviderConfig.BaseURL)
	viper.SetDefault("ai_provider_config.model", DefaultConfig.AIProviderConfig.Model)
	viper.SetDefault("ai_provider_config.max_tokens", DefaultConfig.AIProviderConfig.MaxTokens)
	viper.SetDefault("ai_provider_config.temperature", DefaultConfig.AIProviderConfig.Temperature)
	viper.SetDefault("ai_provider_config.api_key", DefaultConfig.AIProviderConfig.ApiKey)
}

// bindEnv explicitly binds environment variables to configuration keys.
// The provider credential is resolved by providers.ResolveAPIKey from the
// provider-specific variable.
func bindEnv() {
	_ = viper.BindEnv("theme", "THEME")
	_ = viper.BindEnv("require_all_rules", "REQUIRE_ALL_RULES")
	_ = viper.BindEnv("max_duplicate_suffix", "MAX_DUPLICATE_SUFFIX")
	_ = viper.BindEnv("dry_run", "DRY_RUN")
	_ = viper.BindEnv("log_file", "LOG_FILE")
	_ = viper.BindEnv("log_level", "LOG_LEVEL")
	_ = viper.BindEnv("ai_provider_config.provider", "PROVIDER")
	_ = viper.BindEnv("ai_provider_config.base_url", "BASE_URL")
	_ = viper.BindEnv("ai_provider_config.model", "MODEL")
	_ = viper.BindEnv("ai_provider_config.max_tokens", "MAX_TOKENS")
	_ = viper.BindEnv("ai_provider_config.temperature", "TEMPERATURE")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("theme", flags.Lookup("theme"))
	_ = viper.BindPFlag("require_all_rules", flags.Lookup("require_all_rules"))
	_ = viper.BindPFlag("max_duplicate_suffix", flags.Lookup("max_duplicate_suffix"))
	_ = viper.BindPFlag("dry_run", flags.Lookup("dry_run"))
	_ = viper.BindPFlag("interactive", flags.Lookup("interactive"))
	_ = viper.BindPFlag("log_file", flags.Lookup("log_file"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log_level"))
	_ = viper.BindPFlag("ai_provider_config.provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("ai_provider_config.base_url", flags.Lookup("base_url"))
	_ = viper.BindPFlag("ai_provider_config.model", flags.Lookup("model"))
	_ = viper.BindPFlag("ai_provider_config.max_tokens", flags.Lookup("max_tokens"))
	_ = viper.BindPFlag("ai_provider_config.api_key", flags.Lookup("api_key"))

	// temperature has no flag default; an unset flag leaves the provider's own default.
	if f := flags.Lookup("temperature"); f != nil && f.Changed {
		if t, err := flags.GetFloat32("temperature"); err == nil {
			viper.Set("ai_provider_config.temperature", t)
		}
	}
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) with prompts, examples and eligibility rules.")

	flags.String("theme", DefaultConfig.Theme, "Highlight theme for the dry-run plan (e.g., 'dracula', 'monokai', 'github').")
	flags.Bool("require_all_rules", DefaultConfig.RequireAllRules, "Require every include rule to match instead of any of them.")
	flags.Int("max_duplicate_suffix", DefaultConfig.MaxDuplicateSuffix, "Highest ' (N)' suffix tried before giving up on a duplicate name.")
	flags.Bool("dry_run", DefaultConfig.DryRun, "Ask for suggestions and print the rename plan without touching any file.")
	flags.Bool("interactive", DefaultConfig.Interactive, "Confirm every rename before it is applied.")
	flags.String("log_file", DefaultConfig.LogFile, "Write structured JSON logs of the run to this file.")
	flags.String("log_level", DefaultConfig.LogLevel, "Structured log level (debug, info, warn, error).")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	flags.String("provider", DefaultConfig.AIProviderConfig.Provider, "The name of the AI provider ('openai', 'gemini' or 'ollama').")
	flags.String("base_url", DefaultConfig.AIProviderConfig.BaseURL, "The base URL of an OpenAI-compatible API (default is 'https://api.openai.com/v1', or 'http://localhost:11434/api' for ollama).")
	flags.String("model", DefaultConfig.AIProviderConfig.Model, "The model used for filename suggestions (default 'gpt-3.5-turbo' for openai, 'gemini-2.5-flash' for gemini, 'llama3.1' for ollama).")
	flags.Int("max_tokens", DefaultConfig.AIProviderConfig.MaxTokens, "Token budget of a single suggestion.")
	flags.Float32("temperature", 0, "Sampling temperature of the model (provider default when unset).")
	flags.String("api_key", DefaultConfig.AIProviderConfig.ApiKey, "The API key used to authenticate with the AI provider (defaults to the provider's environment variable).")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}

// findConfigFile returns the first renamai-config.{yaml,yml,json} found in cwd.
func findConfigFile(cwd string) string {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(cwd, configName+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
