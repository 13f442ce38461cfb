package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "go.yaml.in/yaml/v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Directory DirectoryConfig `yaml:"directory"`
	Delivery  DeliveryConfig  `yaml:"delivery"`
	Features  FeaturesConfig  `yaml:"features"`
	Cleaner   CleanerConfig   `yaml:"cleaner"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type DirectoryConfig struct {
	BaseURL  string   `yaml:"base_url"`
	PageSize int      `yaml:"page_size"`
	Timeout  Duration `yaml:"timeout"`
}

type DeliveryConfig struct {
	URL        string   `yaml:"url"`
	APIToken   string   `yaml:"api_token"`
	ClientID   string   `yaml:"client_id"`
	Env        string   `yaml:"env"`
	Timeout    Duration `yaml:"timeout"`
	RatePerSec int      `yaml:"rate_per_sec"`
}

type FeaturesConfig struct {
	// AddressByEmail switches the delivery payload from username BCC lists
	// to raw email BCC lists, skipping address resolution in the gateway.
	AddressByEmail bool `yaml:"address_by_email"`
}

type CleanerConfig struct {
	Schedule  string   `yaml:"schedule"`
	Retention Duration `yaml:"retention"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

// Load reads the YAML config at path and applies environment overrides for
// secrets. An empty path yields defaults plus environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Postgres.DSN == "" {
		return nil, errors.New("postgres dsn is not set")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Address: ":8080"},
		Directory: DirectoryConfig{
			PageSize: 40,
			Timeout:  Duration(10 * time.Second),
		},
		Delivery: DeliveryConfig{
			Timeout: Duration(30 * time.Second),
		},
		Cleaner: CleanerConfig{
			Schedule:  "@daily",
			Retention: Duration(14 * 24 * time.Hour),
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}
	if token := os.Getenv("DELIVERY_API_TOKEN"); token != "" {
		cfg.Delivery.APIToken = token
	}
}
