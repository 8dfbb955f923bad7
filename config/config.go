package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
}

// LoggingConfig controls the logrus setup.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// StorageConfig holds the durable client storage location.
type StorageConfig struct {
	// TokenPath is where the bearer token is persisted between runs.
	TokenPath string `yaml:"token_path"`
}

// APIConfig tunes the simulated backend.
type APIConfig struct {
	// LatencyScale multiplies the mock backend's per-operation latency.
	// Unset means 1.0; set a small value like 0.05 for snappier demos.
	LatencyScale      float64       `yaml:"latency_scale"`
	SessionTTLMinutes int           `yaml:"session_ttl_minutes"`
	SessionTTL        time.Duration `yaml:"-"` // derived, ignored by the parser
}

// AuthConfig throttles credential attempts per email.
type AuthConfig struct {
	AttemptsPerMinute float64 `yaml:"attempts_per_minute"`
	AttemptBurst      int     `yaml:"attempt_burst"`
}

// Load reads the configuration from the given path. A missing file yields
// pure defaults so the binary runs without any setup.
func Load(path string) (*Config, error) {
	var cfg Config

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Storage.TokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.Storage.TokenPath = filepath.Join(home, ".fleetops", "token")
	}
	if cfg.API.LatencyScale <= 0 {
		cfg.API.LatencyScale = 1
	}
	if cfg.API.SessionTTLMinutes <= 0 {
		cfg.API.SessionTTLMinutes = 24 * 60
	}
	cfg.API.SessionTTL = time.Duration(cfg.API.SessionTTLMinutes) * time.Minute
	if cfg.Auth.AttemptsPerMinute <= 0 {
		cfg.Auth.AttemptsPerMinute = 30
	}
	if cfg.Auth.AttemptBurst <= 0 {
		cfg.Auth.AttemptBurst = 10
	}

	return &cfg, nil
}
