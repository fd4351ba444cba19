package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .deployctx.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to deployctx! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Embedding provider selection.
	providerPrompt := promptui.Select{
		Label: "Embedding provider for semantic search (none keeps keyword search only)",
		Items: []string{"none", "openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.EmbeddingProvider = EmbeddingProvider(providerStr)

	// 2. Embedding model, when a provider was chosen.
	if cfg.SemanticEnabled() {
		defaultModel := "text-embedding-3-small"
		if cfg.EmbeddingProvider == EmbeddingOllama {
			defaultModel = "nomic-embed-text"
		}
		modelPrompt := promptui.Prompt{
			Label:   "Embedding model",
			Default: defaultModel,
		}
		model, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("model prompt: %w", err)
		}
		cfg.EmbeddingModel = model

		if cfg.EmbeddingProvider == EmbeddingOpenAI {
			if os.Getenv(APIKeyEnvVar(EmbeddingOpenAI)) == "" {
				fmt.Printf("Note: set %s before running ingest or search.\n", APIKeyEnvVar(EmbeddingOpenAI))
			}
		}
		if cfg.EmbeddingProvider == EmbeddingOllama {
			urlPrompt := promptui.Prompt{
				Label:   "Ollama URL",
				Default: cfg.OllamaURL,
			}
			url, err := urlPrompt.Run()
			if err != nil {
				return nil, fmt.Errorf("ollama url prompt: %w", err)
			}
			cfg.OllamaURL = url
		}
	}

	// 3. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory (record catalog and vector store)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir prompt: %w", err)
	}
	cfg.DataDir = dataDir

	// 4. HTTP port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP API port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 0 || p > 65535 {
				return fmt.Errorf("enter a port between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(DefaultPath); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s\n", DefaultPath)
	return cfg, nil
}
