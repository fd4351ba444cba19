// Package embeddings generates vector embeddings for index records.
package embeddings

import (
	"context"
	"fmt"
	"os"

	chromem "github.com/philippgille/chromem-go"

	"github.com/deployctx/deployctx/internal/config"
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	// Embed generates one vector per input text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Name identifies the backing model.
	Name() string
}

// FromConfig builds the embedder selected by the configuration. It returns
// an error when the provider is "none": callers should check
// cfg.SemanticEnabled() first.
func FromConfig(cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.EmbeddingOpenAI:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.EmbeddingOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("%s is not set", config.APIKeyEnvVar(config.EmbeddingOpenAI))
		}
		return NewOpenAIEmbedder(apiKey, cfg.EmbeddingModel), nil
	case config.EmbeddingOllama:
		return NewOllamaEmbedder(cfg.EmbeddingModel, cfg.OllamaURL), nil
	default:
		return nil, fmt.Errorf("no embedding provider configured")
	}
}

// ToChromemFunc adapts an Embedder to chromem-go's per-text embedding
// function.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		vectors, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(vectors) == 0 {
			return nil, fmt.Errorf("embedder %s returned no vector", e.Name())
		}
		return vectors[0], nil
	}
}
