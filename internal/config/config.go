// Package config loads the optional YAML configuration file and overlays
// environment variables on top of it. A missing file is not an error;
// every setting has a default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/capmaster/internal/llm"
)

// Config is the application configuration.
type Config struct {
	// DBPath overrides the database location.
	DBPath string `yaml:"db_path"`

	// Pacing overrides the minimum time spent preparing a battle.
	Pacing time.Duration `yaml:"pacing"`

	// QuestionsPerBattle overrides the battle length.
	QuestionsPerBattle int `yaml:"questions_per_battle"`

	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig mirrors the provider settings in YAML form.
type LLMConfig struct {
	Provider  string         `yaml:"provider"`
	Gemini    ProviderConfig `yaml:"gemini"`
	OpenAI    OpenAIConfig   `yaml:"openai"`
	Anthropic ProviderConfig `yaml:"anthropic"`
}

// ProviderConfig is the common key/model pair.
type ProviderConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// OpenAIConfig adds the base URL override.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// DefaultPath resolves the config file location:
// 1. CAPMASTER_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/capmaster/config.yaml
// 3. ~/.config/capmaster/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("CAPMASTER_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "capmaster", "config.yaml"), nil
}

// Load reads the YAML file at path. A missing file yields the zero
// Config; a malformed one is an error.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LLMConfig translates the file settings into an llm.Config, then
// overlays CAPMASTER_* environment variables, then falls back to
// discovery of standard provider key variables when nothing selected a
// provider key explicitly.
func (c Config) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()

	if c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Gemini.APIKey != "" {
		cfg.Gemini.APIKey = c.LLM.Gemini.APIKey
	}
	if c.LLM.Gemini.Model != "" {
		cfg.Gemini.Model = c.LLM.Gemini.Model
	}
	if c.LLM.OpenAI.APIKey != "" {
		cfg.OpenAI.APIKey = c.LLM.OpenAI.APIKey
	}
	if c.LLM.OpenAI.Model != "" {
		cfg.OpenAI.Model = c.LLM.OpenAI.Model
	}
	if c.LLM.OpenAI.BaseURL != "" {
		cfg.OpenAI.BaseURL = c.LLM.OpenAI.BaseURL
	}
	if c.LLM.Anthropic.APIKey != "" {
		cfg.Anthropic.APIKey = c.LLM.Anthropic.APIKey
	}
	if c.LLM.Anthropic.Model != "" {
		cfg.Anthropic.Model = c.LLM.Anthropic.Model
	}

	cfg = cfg.ApplyEnv()

	// Nothing configured: probe the standard key variables, else fall
	// back to the offline mock provider.
	if cfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			return discovered
		}
		cfg.Provider = "mock"
	}
	return cfg
}
