package catalog

import (
	"time"

	"github.com/tailored-agentic-units/ollama-agent/core/config"
)

const defaultTimeout = 10 * time.Second

// Config holds catalog client parameters. The server address itself is the
// kernel's service endpoint and is passed to NewOllama separately.
type Config struct {
	Timeout config.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// DefaultConfig returns the default catalog configuration.
func DefaultConfig() Config {
	return Config{Timeout: config.Duration(defaultTimeout)}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}
