package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"edunex/internal/models"
)

// Default OpenAI-compatible API roots.
const (
	DefaultGroqBaseURL     = "https://api.groq.com/openai/v1"
	DefaultDeepSeekBaseURL = "https://api.deepseek.com"
)

// openAICompatClient talks to any provider exposing the OpenAI chat
// completions API (Groq, DeepSeek).
type openAICompatClient struct {
	provider    models.Provider
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	system      string
}

func newOpenAICompatClient(provider models.Provider, apiKey, baseURL, model string, temperature float32, maxTokens int, system string, httpClient *http.Client) *openAICompatClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &openAICompatClient{
		provider:    provider,
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		system:      system,
	}
}

func (o *openAICompatClient) Complete(ctx context.Context, prompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if o.system != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: o.system})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		return "", o.wrap(err)
	}
	if len(resp.Choices) == 0 {
		return "", &EmptyResponseError{Provider: o.provider}
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", &EmptyResponseError{Provider: o.provider}
	}
	return text, nil
}

func (o *openAICompatClient) Ping(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return o.wrap(err)
	}
	return nil
}

func (o *openAICompatClient) wrap(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: o.provider, Status: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		msg := ""
		if reqErr.Err != nil {
			msg = reqErr.Err.Error()
		}
		return &ProviderError{Provider: o.provider, Status: reqErr.HTTPStatusCode, Message: msg, Err: err}
	}
	return &ProviderError{Provider: o.provider, Message: err.Error(), Err: err}
}
