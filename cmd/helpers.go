package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deployctx/deployctx/internal/annotate"
	"github.com/deployctx/deployctx/internal/config"
	"github.com/deployctx/deployctx/internal/document"
	"github.com/deployctx/deployctx/internal/embeddings"
	"github.com/deployctx/deployctx/internal/store"
	"github.com/deployctx/deployctx/internal/vectordb"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `deployctx init` to create a config file", err)
	}
	return cfg, nil
}

// loadSchema resolves the annotation schema: an explicit flag wins, then the
// configured schema file, then the built-in deployment schema.
func loadSchema(flagPath string, cfg *config.Config) (*document.Mapping, error) {
	path := flagPath
	if path == "" {
		path = cfg.SchemaFile
	}
	if path == "" {
		return annotate.DefaultSchema(), nil
	}
	schema, err := annotate.LoadSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading annotation schema: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using annotation schema %s\n", path)
	}
	return schema, nil
}

func catalogPath(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "catalog.db")
}

func vectorDir(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "vectordb")
}

// openCatalog opens the SQLite record catalog under the configured data dir.
func openCatalog(cfg *config.Config) (*store.Store, error) {
	catalog, err := store.Open(catalogPath(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening record catalog: %w", err)
	}
	return catalog, nil
}

// openVectors creates the vector store when an embedding provider is
// configured and loads any persisted snapshot. Returns nil when semantic
// search is disabled.
func openVectors(cfg *config.Config) (*vectordb.Store, error) {
	if !cfg.SemanticEnabled() {
		return nil, nil
	}

	embedder, err := embeddings.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	vectors, err := vectordb.New(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	if err := vectors.Load(vectorDir(cfg)); err != nil {
		// An absent snapshot is normal before the first ingest.
		if verbose {
			fmt.Fprintf(os.Stderr, "No vector snapshot loaded: %v\n", err)
		}
	}
	return vectors, nil
}
