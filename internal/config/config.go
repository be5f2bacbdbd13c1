// Package config loads the reconciler's yaml configuration with .env and
// environment-variable overrides for secrets.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ignite/constituent-reconciler/internal/sink"
	"github.com/ignite/constituent-reconciler/internal/source"
	"github.com/ignite/constituent-reconciler/internal/tagmap"
)

// Config holds all configuration for the reconciler.
type Config struct {
	Source source.Config `yaml:"source"`
	TagMap tagmap.Config `yaml:"tagmap"`
	Output sink.Config   `yaml:"output"`
	Log    LogConfig     `yaml:"log"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level     string `yaml:"level"`
	RedactPII *bool  `yaml:"redact_pii"`
}

// Load reads the config file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Source.Kind == "" {
		cfg.Source.Kind = "csv"
	}
	if cfg.Source.CSV.ConstituentsPath == "" {
		cfg.Source.CSV.ConstituentsPath = "data/constituents.csv"
	}
	if cfg.Source.CSV.EmailsPath == "" {
		cfg.Source.CSV.EmailsPath = "data/emails.csv"
	}
	if cfg.Source.CSV.DonationsPath == "" {
		cfg.Source.CSV.DonationsPath = "data/donations.csv"
	}
	if cfg.TagMap.TimeoutSeconds == 0 {
		cfg.TagMap.TimeoutSeconds = 10
	}
	if cfg.TagMap.MaxRetries == 0 {
		cfg.TagMap.MaxRetries = 2
	}
	if cfg.TagMap.CacheTTLMinutes == 0 {
		cfg.TagMap.CacheTTLMinutes = 24 * 60
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}

	return &cfg, nil
}

// LoadFromEnv loads the config file, then overrides secrets and connection
// settings from the environment (a .env file is honored when present).
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if baseURL := os.Getenv("TAGMAP_BASE_URL"); baseURL != "" {
		cfg.TagMap.BaseURL = baseURL
	}
	if apiKey := os.Getenv("TAGMAP_API_KEY"); apiKey != "" {
		cfg.TagMap.APIKey = apiKey
	}
	if addr := os.Getenv("TAGMAP_REDIS_ADDR"); addr != "" {
		cfg.TagMap.RedisAddr = addr
	}
	if password := os.Getenv("TAGMAP_REDIS_PASSWORD"); password != "" {
		cfg.TagMap.RedisPassword = password
	}
	if db := os.Getenv("TAGMAP_REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.TagMap.RedisDB = n
		}
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Source.Postgres.DSN = dsn
	}
	if password := os.Getenv("SNOWFLAKE_PASSWORD"); password != "" {
		cfg.Source.Snowflake.Password = password
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}
