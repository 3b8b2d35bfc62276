package store

// Config holds snapshot store parameters.
type Config struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // FileStore directory; empty keeps snapshots in memory.
}

// DefaultConfig returns the default store configuration (in-memory).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
}

// NewStore creates a Store from configuration: a FileStore when Path is
// set, an in-memory store otherwise.
func NewStore(cfg *Config) Store {
	if cfg.Path == "" {
		return NewMemoryStore()
	}
	return NewFileStore(cfg.Path)
}
