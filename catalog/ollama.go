package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Ollama lists models from an Ollama server's /api/tags endpoint.
type Ollama struct {
	baseURL string
	client  *http.Client
}

// NewOllama creates a catalog client for the server at baseURL
// (e.g. http://localhost:11434).
func NewOllama(baseURL string, cfg *Config) *Ollama {
	return &Ollama{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout.Std()},
	}
}

// List fetches the installed models. Any transport, status, or decode
// failure is reported as ErrUnavailable.
func (o *Ollama) List(ctx context.Context) ([]Model, error) {
	body, err := o.getTags(ctx)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Models []Model `json:"models"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode /api/tags: %v", ErrUnavailable, err)
	}
	if payload.Models == nil {
		return []Model{}, nil
	}
	return payload.Models, nil
}

// Recommendations returns the static recommendation table.
func (o *Ollama) Recommendations() map[string][]string {
	return Recommended()
}

// Health reports whether the server answers the inventory endpoint.
func (o *Ollama) Health(ctx context.Context) error {
	_, err := o.getTags(ctx)
	return err
}

func (o *Ollama) getTags(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to Ollama at %s: %v", ErrUnavailable, o.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read /api/tags: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: /api/tags returned %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
