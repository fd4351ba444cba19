// Package config loads, validates, and persists the deployctx configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is the conventional config file location.
const DefaultPath = ".deployctx.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DEPLOYCTX_*). A missing file yields the
// defaults rather than an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DEPLOYCTX_DATA_DIR -> data_dir, etc.
	if err := k.Load(env.Provider("DEPLOYCTX_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DEPLOYCTX_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized embedding provider values.
var validProviders = map[EmbeddingProvider]bool{
	EmbeddingNone:   true,
	EmbeddingOpenAI: true,
	EmbeddingOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.EmbeddingProvider != "" && !validProviders[c.EmbeddingProvider] {
		return fmt.Errorf("invalid embedding_provider %q: must be one of none, openai, ollama", c.EmbeddingProvider)
	}

	if c.EmbeddingProvider == EmbeddingOpenAI || c.EmbeddingProvider == EmbeddingOllama {
		if c.EmbeddingModel == "" {
			return fmt.Errorf("embedding_model is required when embedding_provider is %q", c.EmbeddingProvider)
		}
	}

	if c.EmbeddingProvider == EmbeddingOllama && c.OllamaURL == "" {
		return fmt.Errorf("ollama_url is required when embedding_provider is ollama")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	return nil
}

// SemanticEnabled reports whether an embedding backend is configured.
func (c *Config) SemanticEnabled() bool {
	return c.EmbeddingProvider != "" && c.EmbeddingProvider != EmbeddingNone
}

// APIKeyEnvVar returns the conventional environment variable name for the
// API key of the given embedding provider, or "" when none is needed.
func APIKeyEnvVar(provider EmbeddingProvider) string {
	if provider == EmbeddingOpenAI {
		return "OPENAI_API_KEY"
	}
	return ""
}
