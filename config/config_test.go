package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
}

func TestLoadConfigs_Defaults(t *testing.T) {
	resetConfig(t)

	cfg, err := LoadConfigs(nil, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig.SystemPrompt, cfg.SystemPrompt)
	assert.Equal(t, DefaultConfig.Examples, cfg.Examples)
	assert.Equal(t, DefaultConfig.EligibilityRules, cfg.EligibilityRules)
	assert.False(t, cfg.RequireAllRules)
	assert.Equal(t, 1000, cfg.MaxDuplicateSuffix)
	require.NotNil(t, cfg.AIProviderConfig)
	assert.Equal(t, "openai", cfg.AIProviderConfig.Provider)
	assert.Equal(t, 50, cfg.AIProviderConfig.MaxTokens)
	assert.Nil(t, cfg.AIProviderConfig.Temperature)
}

func TestLoadConfigs_FileInWorkingDirectory(t *testing.T) {
	resetConfig(t)

	dir := t.TempDir()
	content := `
system_prompt: "Clean up the name of this {extension} file."
examples:
  - user: "01 - track{extension}"
    assistant: "Track{extension}"
eligibility_rules:
  - pattern: '\.mp3$'
    description: "audio"
  - pattern: '^\d+'
    description: "numbered"
require_all_rules: true
ai_provider_config:
  provider: gemini
  model: gemini-2.0-flash
  max_tokens: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "renamai-config.yml"), []byte(content), 0o644))

	cfg, err := LoadConfigs(nil, dir)
	require.NoError(t, err)

	assert.Equal(t, "Clean up the name of this {extension} file.", cfg.SystemPrompt)
	assert.Equal(t, []Example{{User: "01 - track{extension}", Assistant: "Track{extension}"}}, cfg.Examples)
	require.Len(t, cfg.EligibilityRules, 2)
	assert.Equal(t, `\.mp3$`, cfg.EligibilityRules[0].Pattern)
	assert.False(t, cfg.EligibilityRules[0].Exclude)
	assert.True(t, cfg.RequireAllRules)
	assert.Equal(t, "gemini", cfg.AIProviderConfig.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AIProviderConfig.Model)
	assert.Equal(t, 30, cfg.AIProviderConfig.MaxTokens)
}

func TestLoadConfigs_Flags(t *testing.T) {
	resetConfig(t)

	cmd := &cobra.Command{Use: "renamai"}
	InitFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--provider", "ollama", "--dry_run", "--temperature", "0.2", "--max_duplicate_suffix", "5"}))

	cfg, err := LoadConfigs(cmd, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.AIProviderConfig.Provider)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 5, cfg.MaxDuplicateSuffix)
	require.NotNil(t, cfg.AIProviderConfig.Temperature)
	assert.InDelta(t, 0.2, *cfg.AIProviderConfig.Temperature, 1e-6)
}

func TestLoadConfigs_Invalid(t *testing.T) {
	resetConfig(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_duplicate_suffix": 0, "ai_provider_config": {"provider": "azure"}}`), 0o644))
	cfgFile = path

	_, err := LoadConfigs(nil, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), `unsupported provider "azure"`)
	assert.Contains(t, err.Error(), "max_duplicate_suffix must be positive")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig
	provider := *DefaultConfig.AIProviderConfig
	cfg.AIProviderConfig = &provider
	require.NoError(t, cfg.Validate())

	cfg.SystemPrompt = "  "
	cfg.EligibilityRules = []EligibilityRule{{Pattern: ""}}
	provider.MaxTokens = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system_prompt must not be empty")
	assert.Contains(t, err.Error(), "eligibility_rules[0]: empty pattern")
	assert.Contains(t, err.Error(), "max_tokens must be positive")
}

func TestGetConfigFileType(t *testing.T) {
	assert.Equal(t, "json", GetConfigFileType("renamai-config.json"))
	assert.Equal(t, "yaml", GetConfigFileType("renamai-config.yml"))
	assert.Equal(t, "yaml", GetConfigFileType("renamai-config.yaml"))
	assert.Equal(t, "", GetConfigFileType("renamai-config"))
}
