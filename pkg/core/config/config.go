package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the process configuration, loaded once at startup and passed by
// reference into the components that need it.
type Config struct {
	Listen string `yaml:"listen"`

	// Providers is the fallback chain in order of preference.
	Providers []ProviderConfig `yaml:"providers"`

	Retrieval struct {
		TopK int `yaml:"top_k"`
	} `yaml:"retrieval"`

	Chat struct {
		HistoryTurns int `yaml:"history_turns"`
	} `yaml:"chat"`

	Analytics struct {
		DefaultPerPage int    `yaml:"default_per_page"`
		RulesFile      string `yaml:"rules_file"` // optional Hjson category rules
		AssistProvider string `yaml:"assist_provider"`
	} `yaml:"analytics"`
}

// ProviderConfig names one provider in the chain with an optional model
// override.
type ProviderConfig struct {
	Name  string `yaml:"name"` // anthropic | openai | gemini | ollama
	Model string `yaml:"model"`
}

// Default returns the configuration used when no config file is present:
// the production fallback chain with per-provider default models.
func Default() *Config {
	cfg := &Config{
		Listen: ":8080",
		Providers: []ProviderConfig{
			{Name: "anthropic"},
			{Name: "openai"},
			{Name: "ollama"},
		},
	}
	cfg.Retrieval.TopK = 5
	cfg.Chat.HistoryTurns = 3
	cfg.Analytics.DefaultPerPage = 50
	return cfg
}

// Load reads a YAML config file, filling gaps with defaults. A missing file
// is not an error: the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if len(cfg.Providers) == 0 {
		cfg.Providers = Default().Providers
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Chat.HistoryTurns <= 0 {
		cfg.Chat.HistoryTurns = 3
	}
	if cfg.Analytics.DefaultPerPage <= 0 {
		cfg.Analytics.DefaultPerPage = 50
	}
	return cfg, nil
}
