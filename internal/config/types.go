package config

// EmbeddingProvider identifies the embedding backend used for semantic
// search over index records.
type EmbeddingProvider string

const (
	// EmbeddingNone disables semantic search; keyword search still works.
	EmbeddingNone   EmbeddingProvider = "none"
	EmbeddingOpenAI EmbeddingProvider = "openai"
	EmbeddingOllama EmbeddingProvider = "ollama"
)

// Config is the top-level deployctx configuration, corresponding to
// .deployctx.yml.
type Config struct {
	SchemaFile        string            `yaml:"schema_file" koanf:"schema_file"`
	DataDir           string            `yaml:"data_dir" koanf:"data_dir"`
	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	OllamaURL         string            `yaml:"ollama_url" koanf:"ollama_url"`
	Server            ServerConfig      `yaml:"server" koanf:"server"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// DefaultConfig returns a Config with sensible defaults: keyword search only,
// data under .deployctx, built-in annotation schema.
func DefaultConfig() *Config {
	return &Config{
		DataDir:           ".deployctx",
		EmbeddingProvider: EmbeddingNone,
		EmbeddingModel:    "text-embedding-3-small",
		OllamaURL:         "http://localhost:11434",
		Server: ServerConfig{
			Port: 8787,
		},
	}
}
