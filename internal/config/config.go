package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk client configuration. Flags and environment
// variables take precedence over the file; the file takes precedence over
// these defaults.
type Config struct {
	// ServerURL is the base URL of the HR backend.
	ServerURL string `yaml:"server_url"`

	// RequestTimeout bounds each backend call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// InactivityTimeout is the idle period before forced logout.
	InactivityTimeout time.Duration `yaml:"inactivity_timeout"`

	// SessionDir overrides where the session is persisted.
	SessionDir string `yaml:"session_dir"`

	// CacheDir enables the on-disk HTTP cache for photo fetches.
	CacheDir string `yaml:"cache_dir"`
}

// Default returns the built-in configuration, matching the development
// setup of the HR backend.
func Default() Config {
	return Config{
		ServerURL:         "http://localhost:8000",
		RequestTimeout:    30 * time.Second,
		InactivityTimeout: 5 * time.Minute,
	}
}

// DefaultPath returns ~/.hrconsole/config.yaml, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hrconsole", "config.yaml")
}

// Load reads the YAML config at path, layered over the defaults. A missing
// file is not an error; a malformed one is, since silently ignoring a typo'd
// config would be worse than failing.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("loaded config file")

	return cfg, nil
}
