package utils

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Embedding service
	EmbeddingAPIURL    string        `yaml:"EMBEDDING_API_URL"`
	EmbeddingAPISecret string        `yaml:"EMBEDDING_API_SECRET"`
	EmbeddingTimeout   time.Duration `yaml:"EMBEDDING_TIMEOUT"`
	EmbeddingBatchTimeout time.Duration `yaml:"EMBEDDING_BATCH_TIMEOUT"`

	// Similarity threshold (cosine distance, strict upper bound)
	SimilarityDistanceThreshold float64 `yaml:"SIMILARITY_DISTANCE_THRESHOLD"`

	// Redis embedding cache (disabled when address is empty)
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Server
	AppPort  string `yaml:"APP_PORT"`
	LogLevel string `yaml:"LOG_LEVEL"`
}

// LoadConfig reads config.yaml, applies environment overrides and fills in
// defaults. The result is passed explicitly to each component; nothing in
// the pipeline reads ambient configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if file, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.EmbeddingAPIURL == "" {
		cfg.EmbeddingAPIURL = "http://localhost:8001"
	}
	if cfg.EmbeddingTimeout == 0 {
		cfg.EmbeddingTimeout = 10 * time.Second
	}
	if cfg.EmbeddingBatchTimeout == 0 {
		cfg.EmbeddingBatchTimeout = 30 * time.Second
	}
	if cfg.SimilarityDistanceThreshold == 0 {
		// Cosine distance < 0.3 corresponds to ~0.85 similarity.
		cfg.SimilarityDistanceThreshold = 0.3
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := map[string]*string{
		"DB_USER":              &cfg.DBUser,
		"DB_NAME":              &cfg.DBName,
		"DB_PASSWORD":          &cfg.DBPassword,
		"DB_PORT":              &cfg.DBPort,
		"DB_HOST":              &cfg.DBHost,
		"EMBEDDING_API_URL":    &cfg.EmbeddingAPIURL,
		"EMBEDDING_API_SECRET": &cfg.EmbeddingAPISecret,
		"REDIS_ADDR":           &cfg.RedisAddr,
		"REDIS_PASSWORD":       &cfg.RedisPassword,
		"APP_PORT":             &cfg.AppPort,
		"LOG_LEVEL":            &cfg.LogLevel,
	}
	for key, target := range overrides {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
}
