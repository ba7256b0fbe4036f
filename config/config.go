// Package config loads feesimd's TOML configuration, creating a
// reasonable default file on first run.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is feesimd's full runtime configuration.
type Config struct {
	ListenAddress string        `toml:"ListenAddress"`
	Environment   string        `toml:"Environment"`
	DataDir       string        `toml:"DataDir"`
	Database      DatabaseConfig `toml:"Database"`
	Auth          AuthConfig    `toml:"Auth"`
	RateLimit     RateLimitConfig `toml:"RateLimit"`
	Observability ObservabilityConfig `toml:"Observability"`
}

type DatabaseConfig struct {
	Driver string `toml:"Driver"` // "sqlite" or "postgres"
	DSN    string `toml:"DSN"`
}

type AuthConfig struct {
	Enabled    bool   `toml:"Enabled"`
	HMACSecret string `toml:"HMACSecret"`
	Issuer     string `toml:"Issuer"`
	Audience   string `toml:"Audience"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"RequestsPerSecond"`
	Burst             int     `toml:"Burst"`
}

type ObservabilityConfig struct {
	OTLPEndpoint string `toml:"OTLPEndpoint"`
	MetricsPath  string `toml:"MetricsPath"`
	LogRequests  bool   `toml:"LogRequests"`
	LogFilePath  string `toml:"LogFilePath"` // empty disables file rotation; stdout only
}

// Load reads the configuration at path, writing a default file there
// first if none exists.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

func createDefault(path string) (*Config, error) {
	cfg := &Config{
		ListenAddress: ":8080",
		Environment:   "development",
		DataDir:       "./feesimd-data",
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "./feesimd-data/runs.db",
		},
		Auth: AuthConfig{
			Enabled:  false,
			Issuer:   "feesimd",
			Audience: "feesimd-clients",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Observability: ObservabilityConfig{
			MetricsPath: "/metrics",
			LogRequests: true,
			LogFilePath: "./feesimd-data/feesimd.log",
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: write default %s: %w", path, err)
	}
	return cfg, nil
}

// RequestTimeout bounds how long a single HTTP handler may run; kept as
// a constant rather than a config knob since process_transaction is a
// bounded in-memory computation (see core/pipeline), not an I/O call.
const RequestTimeout = 30 * time.Second
