package resolver

import (
	"time"

	"github.com/tailored-agentic-units/ollama-agent/core/config"
)

const (
	defaultAPIKey  = "ollama"
	defaultTimeout = 150 * time.Second
)

// Config holds resolver parameters. The server address is the kernel's
// service endpoint; the OpenAI-compatible API is expected under /v1.
type Config struct {
	APIKey      string          `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Timeout     config.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Temperature float32         `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() Config {
	return Config{
		APIKey:  defaultAPIKey,
		Timeout: config.Duration(defaultTimeout),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.APIKey != "" {
		c.APIKey = source.APIKey
	}
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
	if source.Temperature > 0 {
		c.Temperature = source.Temperature
	}
}
