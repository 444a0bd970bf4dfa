package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhabedank/retailer-check/internal/dataset"
	"github.com/dhabedank/retailer-check/internal/llm"
)

const (
	envVarPrefix   = "RETAILER_CHECK"
	configFileName = ".retailer-check.yaml"
	defaultAddr    = ":8080"
)

// Settings is the merged configuration shared by every command.
// Precedence: flags > environment > config file > defaults.
type Settings struct {
	LLM              string `yaml:"llm,omitempty"               split_words:"true"`
	Model            string `yaml:"model,omitempty"             split_words:"true"`
	Dataset          string `yaml:"dataset,omitempty"           split_words:"true"`
	Addr             string `yaml:"addr,omitempty"              split_words:"true"`
	MaxTokens        int    `yaml:"max_tokens,omitempty"        split_words:"true"`
	MaxRetries       int    `yaml:"max_retries,omitempty"       split_words:"true"`
	PromptFile       string `yaml:"prompt_file,omitempty"       split_words:"true"`
	StrictLegitimacy bool   `yaml:"strict_legitimacy,omitempty" split_words:"true"`
	PreferCLI        bool   `yaml:"prefer_cli,omitempty"        split_words:"true"`

	// Source is the config file the settings were read from, if any.
	Source string `yaml:"-" ignored:"true"`
}

// DefaultSettings returns the values used when nothing else is configured.
func DefaultSettings() Settings {
	llmDefaults := llm.DefaultConfig()
	return Settings{
		LLM:        "auto",
		Dataset:    dataset.DefaultPath,
		Addr:       defaultAddr,
		MaxTokens:  llmDefaults.MaxTokens,
		MaxRetries: llmDefaults.MaxRetries,
	}
}

// LLMConfig converts the settings into adapter configuration.
func (s Settings) LLMConfig() llm.Config {
	config := llm.DefaultConfig()
	config.Model = s.Model
	if s.MaxTokens > 0 {
		config.MaxTokens = s.MaxTokens
	}
	config.MaxRetries = s.MaxRetries
	config.PreferCLI = s.PreferCLI
	return config
}

// Validate checks values that would otherwise fail late.
func (s Settings) Validate() error {
	if s.Dataset == "" {
		return fmt.Errorf("dataset path is empty")
	}
	if s.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", s.MaxTokens)
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", s.MaxRetries)
	}
	return nil
}

// Flag values; only flags the user actually set override other sources.
var (
	configFile string
	verbose    bool
	flagValues Settings
)

func addCommonFlags(cmd *cobra.Command) {
	defaults := DefaultSettings()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "Config file (default: "+configFileName+" or ~/"+configFileName+")")
	f.StringVarP(&flagValues.Dataset, "dataset", "d", defaults.Dataset, "Retailer dataset (CSV)")
	f.StringVarP(&flagValues.LLM, "llm", "l", defaults.LLM, "LLM provider (auto/mistral-api/anthropic-api/openai-api/claude-cli/codex-cli)")
	f.StringVarP(&flagValues.Model, "model", "m", "", "Model to use (provider-specific)")
	f.IntVar(&flagValues.MaxTokens, "max-tokens", defaults.MaxTokens, "Maximum answer length in tokens")
	f.IntVar(&flagValues.MaxRetries, "max-retries", defaults.MaxRetries, "Retries for failed API requests")
	f.StringVar(&flagValues.PromptFile, "prompt-file", "", "Custom prompt template (Go text/template with .Data and .Retailer)")
	f.BoolVar(&flagValues.StrictLegitimacy, "strict-legitimacy", false, "Do not highlight negated verdicts such as \"Not Legitimate\"")
	f.BoolVar(&flagValues.PreferCLI, "prefer-cli", false, "With --llm auto, try the claude and codex CLIs before the APIs")
	f.BoolVarP(&verbose, "verbose", "v", false, "Log requests and timings to stderr")
}

// loadSettings merges defaults, the config file, the environment (after
// loading .env) and explicitly set flags.
func loadSettings(cmd *cobra.Command) (Settings, error) {
	settings := DefaultSettings()

	path, err := findConfigFile(configFile)
	if err != nil {
		return settings, err
	}
	if path != "" {
		if err := readConfigFile(path, &settings); err != nil {
			return settings, err
		}
		settings.Source = path
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return settings, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := envconfig.Process(envVarPrefix, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	applyFlags(cmd, &settings)

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

func applyFlags(cmd *cobra.Command, s *Settings) {
	f := cmd.Flags()
	if f.Changed("llm") {
		s.LLM = flagValues.LLM
	}
	if f.Changed("model") {
		s.Model = flagValues.Model
	}
	if f.Changed("dataset") {
		s.Dataset = flagValues.Dataset
	}
	if f.Changed("addr") {
		s.Addr = flagValues.Addr
	}
	if f.Changed("max-tokens") {
		s.MaxTokens = flagValues.MaxTokens
	}
	if f.Changed("max-retries") {
		s.MaxRetries = flagValues.MaxRetries
	}
	if f.Changed("prompt-file") {
		s.PromptFile = flagValues.PromptFile
	}
	if f.Changed("strict-legitimacy") {
		s.StrictLegitimacy = flagValues.StrictLegitimacy
	}
	if f.Changed("prefer-cli") {
		s.PreferCLI = flagValues.PreferCLI
	}
}

// findConfigFile returns explicit when set (it must exist), otherwise the
// first of ./.retailer-check.yaml and ~/.retailer-check.yaml that exists.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, configFileName)
		if _, err := os.Stat(homePath); err == nil {
			return homePath, nil
		}
	}
	return "", nil
}

func readConfigFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func getConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(home, configFileName)
}

func saveConfig(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
