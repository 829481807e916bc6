// Package config holds the JSON configuration for the ghostlap tools.
// Defaults are always valid; a config file only overrides what it names.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mfriis/ghostlap/internal/storage"
)

// Config is the top-level configuration.
type Config struct {
	Ghost   GhostConfig   `json:"ghost"`
	Storage StorageConfig `json:"storage"`
	Server  ServerConfig  `json:"server"`
}

// GhostConfig holds recording and replay settings.
type GhostConfig struct {
	// SampleInterval is the recorder sampling period in seconds.
	SampleInterval float64 `json:"sample_interval"`
	// Colors are the fill colors for the fixed ghost slots.
	Colors []string `json:"colors"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string              `json:"backend"`
	FileDir string              `json:"file_dir"`
	SQLite  string              `json:"sqlite_path"`
	Redis   storage.RedisConfig `json:"redis"`
}

// ServerConfig holds settings for the inspection server.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Ghost: GhostConfig{
			SampleInterval: 0.1,
			Colors:         []string{"#4dd2ff", "#ff4d88", "#b3ff4d"},
		},
		Storage: StorageConfig{
			Backend: storage.BackendMemory,
			FileDir: "ghosts",
			SQLite:  "ghosts.db",
			Redis: storage.RedisConfig{
				Addr:        "localhost:6379",
				PoolSize:    10,
				MaxRetries:  3,
				DialTimeout: 5 * time.Second,
			},
		},
		Server: ServerConfig{
			Addr: ":8090",
		},
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.Ghost.SampleInterval <= 0 {
		return fmt.Errorf("sample_interval must be positive, got %v", c.Ghost.SampleInterval)
	}
	if len(c.Ghost.Colors) == 0 {
		return fmt.Errorf("at least one ghost color is required")
	}
	switch c.Storage.Backend {
	case storage.BackendMemory, storage.BackendFile, storage.BackendSQLite, storage.BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q, must be one of: memory, file, sqlite, redis", c.Storage.Backend)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr cannot be empty")
	}
	return nil
}

// LoadFile reads a JSON config file and merges it with defaults.
// Fields not specified in the file retain their default values.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
