package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

// ChatClient is the subset of *openai.Client used by the resolver.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI resolves intents through an OpenAI-compatible chat completion API.
type OpenAI struct {
	client       ChatClient
	systemPrompt string
	temperature  float32
}

// NewOpenAI creates a resolver for the server at endpoint. The /v1 suffix is
// appended when missing, so an Ollama base URL can be passed as-is.
func NewOpenAI(endpoint string, cfg *Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = apiBase(endpoint)
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout.Std()}

	return NewOpenAIWithClient(openai.NewClientWithConfig(clientCfg), cfg)
}

// NewOpenAIWithClient creates a resolver around an existing chat client.
func NewOpenAIWithClient(client ChatClient, cfg *Config) *OpenAI {
	return &OpenAI{
		client:       client,
		systemPrompt: SystemPrompt(),
		temperature:  cfg.Temperature,
	}
}

// Resolve sends the transcript to model and decodes the reply as an intent.
func (r *OpenAI) Resolve(ctx context.Context, transcript, model string) (protocol.Intent, error) {
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: r.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
	}

	resp, err := r.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: chat completion with %s: %v", ErrResolution, model, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: %s returned no choices", ErrResolution, model)
	}

	content := extractJSON(resp.Choices[0].Message.Content)
	intent, err := protocol.DecodeIntent([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolution, err)
	}
	return intent, nil
}

func apiBase(endpoint string) string {
	endpoint = strings.TrimRight(endpoint, "/")
	if strings.HasSuffix(endpoint, "/v1") {
		return endpoint
	}
	return endpoint + "/v1"
}
