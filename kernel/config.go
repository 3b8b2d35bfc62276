package kernel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/ollama-agent/catalog"
	"github.com/tailored-agentic-units/ollama-agent/resolver"
	"github.com/tailored-agentic-units/ollama-agent/session"
	"github.com/tailored-agentic-units/ollama-agent/store"
)

const (
	defaultModel    = "llama3.1:8b"
	defaultEndpoint = "http://localhost:11434"
	defaultObserver = "slog"
)

// Config holds initialization parameters for the kernel and its
// collaborators. Each section delegates to that subsystem's config.
type Config struct {
	Model    string          `json:"model,omitempty" yaml:"model,omitempty"`
	Endpoint string          `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Observer string          `json:"observer,omitempty" yaml:"observer,omitempty"`
	Session  session.Config  `json:"session" yaml:"session"`
	Resolver resolver.Config `json:"resolver" yaml:"resolver"`
	Catalog  catalog.Config  `json:"catalog" yaml:"catalog"`
	Store    store.Config    `json:"store" yaml:"store"`
}

// DefaultConfig returns a Config with defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Model:    defaultModel,
		Endpoint: defaultEndpoint,
		Observer: defaultObserver,
		Session:  session.DefaultConfig(),
		Resolver: resolver.DefaultConfig(),
		Catalog:  catalog.DefaultConfig(),
		Store:    store.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	if source.Model != "" {
		c.Model = source.Model
	}
	if source.Endpoint != "" {
		c.Endpoint = source.Endpoint
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}

	c.Session.Merge(&source.Session)
	c.Resolver.Merge(&source.Resolver)
	c.Catalog.Merge(&source.Catalog)
	c.Store.Merge(&source.Store)
}

// LoadConfig reads a config file, merges it with defaults, and returns the
// resulting Config. Files ending in .yaml or .yml are parsed as YAML, all
// others as JSON.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
