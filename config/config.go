// Package config provides configuration loading for tripweaver.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tripweaver configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	AI     AIConfig     `yaml:"ai"`
	Data   DataConfig   `yaml:"data"`
	Agent  AgentConfig  `yaml:"agent"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `yaml:"addr"`
}

// AIConfig configures the completion provider.
type AIConfig struct {
	// Provider selects the completion backend: groq, deepseek, or openai.
	Provider string `yaml:"provider"`
	// Endpoint overrides the provider's default base URL (usually empty).
	Endpoint string `yaml:"endpoint"`
	// Model overrides the provider's default model (usually empty).
	Model string `yaml:"model"`
	// Timeout is the maximum time to wait for a completion response,
	// as a duration string like "60s".
	Timeout string `yaml:"timeout"`
}

// GetTimeout returns the completion timeout, defaulting to 60s.
func (c *AIConfig) GetTimeout() time.Duration {
	return parseDurationOrDefault(c.Timeout, 60*time.Second)
}

// DataConfig configures the hosted data service backing the catalog pages.
type DataConfig struct {
	// URL is the data service base URL.
	URL string `yaml:"url"`
	// Key is the data service API key.
	Key string `yaml:"key"`
}

// AgentConfig configures the planning pipeline.
type AgentConfig struct {
	// TaskDelay is the simulated execution time per agent task,
	// as a duration string like "1500ms".
	TaskDelay string `yaml:"task_delay"`
}

// GetTaskDelay returns the per-task delay, defaulting to 1500ms.
func (c *AgentConfig) GetTaskDelay() time.Duration {
	return parseDurationOrDefault(c.TaskDelay, 1500*time.Millisecond)
}

// parseDurationOrDefault parses a duration string, returning the default when
// the string is empty.
func parseDurationOrDefault(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		AI: AIConfig{
			Provider: "groq",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.AI.Provider == "" {
		return fmt.Errorf("ai.provider is required")
	}
	if c.AI.Timeout != "" {
		if _, err := time.ParseDuration(c.AI.Timeout); err != nil {
			return fmt.Errorf("ai.timeout is not a valid duration: %w", err)
		}
	}
	if c.Agent.TaskDelay != "" {
		d, err := time.ParseDuration(c.Agent.TaskDelay)
		if err != nil {
			return fmt.Errorf("agent.task_delay is not a valid duration: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("agent.task_delay must not be negative")
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}
