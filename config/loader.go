package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Loader loads configuration from defaults, an optional file, and the
// environment, in that order of precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load resolves the effective configuration. An empty path means no file;
// a missing file at an explicit path is an error.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		config = loaded
		l.logger.Debug("loaded config file", "path", path)
	}

	l.applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (l *Loader) applyEnv(config *Config) {
	if addr := os.Getenv("TRIPWEAVER_ADDR"); addr != "" {
		config.Server.Addr = addr
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		config.AI.Provider = provider
	}
	if endpoint := os.Getenv("AI_ENDPOINT"); endpoint != "" {
		config.AI.Endpoint = endpoint
	}
	if model := os.Getenv("AI_MODEL"); model != "" {
		config.AI.Model = model
	}
	if timeout := os.Getenv("AI_TIMEOUT"); timeout != "" {
		if _, err := time.ParseDuration(timeout); err != nil {
			l.logger.Warn("ignoring invalid AI_TIMEOUT", "value", timeout, "error", err)
		} else {
			config.AI.Timeout = timeout
		}
	}
	if url := os.Getenv("DATA_API_URL"); url != "" {
		config.Data.URL = url
	}
	if key := os.Getenv("DATA_API_KEY"); key != "" {
		config.Data.Key = key
	}
}
