// Package config loads matchcore's environment + YAML configuration:
// plain getenv plumbing with struct-tag validation on top.
package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/brain2/matchcore/internal/domain"
	"github.com/brain2/matchcore/internal/matcherr"
	"github.com/brain2/matchcore/internal/rank"
)

// Config is every construction-time setting Core needs. Every field is
// validated eagerly in Load/NewCore; nothing here is re-checked per
// request.
type Config struct {
	Environment string `validate:"required,oneof=development staging production"`
	LogLevel    string `validate:"required,oneof=debug info warn error"`

	AWSRegion     string `validate:"required_if=Environment production"`
	DynamoDBTable string `validate:"required_if=Environment production"`

	EmbeddingDimension int `validate:"required,gt=0"`

	ImplicationGraphPath string
	RRFWeightsPath       string

	EnableTracing bool
	EnableMetrics bool

	RetrievalLimit int `validate:"required,gt=0"`
}

// Load reads Config from environment variables, then runs struct-tag
// validation.
func Load() (*Config, error) {
	cfg := &Config{
		Environment:          getEnv("MATCHCORE_ENV", "development"),
		LogLevel:             getEnv("MATCHCORE_LOG_LEVEL", "info"),
		AWSRegion:            getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable:        getEnv("MATCHCORE_LISTINGS_TABLE", "matchcore-listings"),
		EmbeddingDimension:   getEnvInt("MATCHCORE_EMBEDDING_DIM", 384),
		ImplicationGraphPath: getEnv("MATCHCORE_IMPLICATION_GRAPH", ""),
		RRFWeightsPath:       getEnv("MATCHCORE_RRF_WEIGHTS", ""),
		EnableTracing:        getEnvBool("MATCHCORE_ENABLE_TRACING", false),
		EnableMetrics:        getEnvBool("MATCHCORE_ENABLE_METRICS", false),
		RetrievalLimit:       getEnvInt("MATCHCORE_RETRIEVAL_LIMIT", 200),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate runs the struct-tag checks, wrapping any failure as a
// ConfigError.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return matcherr.Config("invalid configuration", err)
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Environment == "production" }

// RRFWeights resolves the ranker's weight tables: the locked defaults
// unless an override file is configured.
func (c *Config) RRFWeights() (map[domain.Intent]rank.Weights, error) {
	if c.RRFWeightsPath == "" {
		return rank.DefaultWeights(), nil
	}
	return loadRRFWeightsYAML(c.RRFWeightsPath)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	return v == "true" || v == "1" || v == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
