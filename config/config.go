package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Address string `yaml:"address"`
	// Requests per second allowed per client IP on the scoring trigger.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// ScoringConfig holds scoring worker configuration.
type ScoringConfig struct {
	QueueMaxWorkers int `yaml:"queue_max_workers"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, fall back to environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Observability.Environment = v
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func loadConfigFromEnv() (*Config, error) {
	cfg := Config{
		Postgres: PostgresConfig{DSN: os.Getenv("DATABASE_URL")},
		NATS:     NATSConfig{URL: os.Getenv("NATS_URL")},
		HTTP:     HTTPConfig{Address: os.Getenv("HTTP_ADDRESS")},
		Observability: ObservabilityConfig{
			MetricsAddress: os.Getenv("METRICS_ADDRESS"),
			Environment:    os.Getenv("ENVIRONMENT"),
		},
	}

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when no config file is present")
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.HTTP.RateLimit == 0 {
		cfg.HTTP.RateLimit = 1
	}
	if cfg.HTTP.RateBurst == 0 {
		cfg.HTTP.RateBurst = 5
	}
	if cfg.Scoring.QueueMaxWorkers == 0 {
		cfg.Scoring.QueueMaxWorkers = 10
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "development"
	}
}
