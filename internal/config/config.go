package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic application metadata.
type AppInfo struct {
	Name        string `yaml:"name"`        // application name
	Version     string `yaml:"version"`     // application version
	Environment string `yaml:"environment"` // e.g. "development", "production"
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"` // listen address, e.g. ":8080"
}

// LoggerConfig holds the logger settings.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// MinIOConfig holds the object storage connection settings.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`  // MinIO endpoint
	AccessKey string `yaml:"accessKey"` // access key
	SecretKey string `yaml:"secretKey"` // secret key
	Bucket    string `yaml:"bucket"`    // bucket holding student documents
	Secure    bool   `yaml:"secure"`    // use HTTPS
}

// MongoConfig holds the document database connection settings.
type MongoConfig struct {
	Address    string `yaml:"address"`    // connection URI
	Username   string `yaml:"username"`   // username
	Password   string `yaml:"password"`   // password
	Database   string `yaml:"database"`   // database name
	Collection string `yaml:"collection"` // embeddings collection name
}

// RedisConfig holds the redis connection settings. Redis is optional; when
// the address is empty the service falls back to in-process ingest locks.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DatabaseConfigs groups all backing store settings.
type DatabaseConfigs struct {
	MinIO   MinIOConfig `yaml:"minio"`
	MongoDB MongoConfig `yaml:"mongodb"`
	Redis   RedisConfig `yaml:"redis"`
}

// GeminiConfig holds the settings for one Gemini model.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"` // API key; GOOGLE_API_KEY overrides
	Model  string `yaml:"model"`  // model name
}

// EmbeddingConfig holds the embedding provider settings.
type EmbeddingConfig struct {
	Provider string       `yaml:"provider"` // only "gemini" is supported
	Gemini   GeminiConfig `yaml:"gemini"`
}

// LLMConfig holds the generative model settings.
type LLMConfig struct {
	Provider string       `yaml:"provider"` // only "gemini" is supported
	Gemini   GeminiConfig `yaml:"gemini"`
}

// RetrievalConfig tunes the chunking and retrieval behavior.
type RetrievalConfig struct {
	ChunkSize int    `yaml:"chunkSize"` // max characters per chunk
	TopK      int    `yaml:"topK"`      // snippets handed to the report prompt
	Corpus    string `yaml:"corpus"`    // default managed corpus resource name
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Logger    LoggerConfig    `yaml:"logger"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Databases DatabaseConfigs `yaml:"databases"`
}

const (
	defaultChunkSize = 1000
	defaultTopK      = 5
)

// LoadConfig reads and parses the YAML configuration file at path.
// Secrets may be supplied via the environment: GOOGLE_API_KEY overrides both
// Gemini API keys when set.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file '%s': %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file '%s': %w", path, err)
	}

	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		cfg.Embedding.Gemini.APIKey = key
		cfg.LLM.Gemini.APIKey = key
	}

	if cfg.Retrieval.ChunkSize <= 0 {
		cfg.Retrieval.ChunkSize = defaultChunkSize
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = defaultTopK
	}

	return &cfg, nil
}
