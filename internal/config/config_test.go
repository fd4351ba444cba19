package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataDir != ".deployctx" {
		t.Errorf("expected default data_dir %q, got %q", ".deployctx", cfg.DataDir)
	}
	if cfg.EmbeddingProvider != EmbeddingNone {
		t.Errorf("expected default embedding_provider %q, got %q", EmbeddingNone, cfg.EmbeddingProvider)
	}
	if cfg.Server.Port != 8787 {
		t.Errorf("expected default port 8787, got %d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.deployctx.yml")

	original := DefaultConfig()
	original.EmbeddingProvider = EmbeddingOpenAI
	original.EmbeddingModel = "text-embedding-3-large"
	original.DataDir = "state"
	original.Server.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.EmbeddingProvider != original.EmbeddingProvider {
		t.Errorf("embedding_provider: got %q, want %q", loaded.EmbeddingProvider, original.EmbeddingProvider)
	}
	if loaded.EmbeddingModel != original.EmbeddingModel {
		t.Errorf("embedding_model: got %q, want %q", loaded.EmbeddingModel, original.EmbeddingModel)
	}
	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.Server.Port != original.Server.Port {
		t.Errorf("server.port: got %d, want %d", loaded.Server.Port, original.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != DefaultConfig().DataDir {
		t.Errorf("expected defaults, got data_dir %q", cfg.DataDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"unknown provider", func(c *Config) { c.EmbeddingProvider = "cohere" }, true},
		{"openai without model", func(c *Config) {
			c.EmbeddingProvider = EmbeddingOpenAI
			c.EmbeddingModel = ""
		}, true},
		{"ollama without url", func(c *Config) {
			c.EmbeddingProvider = EmbeddingOllama
			c.OllamaURL = ""
		}, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"ollama complete", func(c *Config) {
			c.EmbeddingProvider = EmbeddingOllama
			c.EmbeddingModel = "nomic-embed-text"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSemanticEnabled(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SemanticEnabled() {
		t.Error("semantic search must be off by default")
	}
	cfg.EmbeddingProvider = EmbeddingOllama
	if !cfg.SemanticEnabled() {
		t.Error("expected semantic search enabled for ollama")
	}
}
