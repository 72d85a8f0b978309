package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"edunex/internal/models"
)

// endpointClient posts {prompt} to a remote completion endpoint that answers
// {text} or {error}.
type endpointClient struct {
	provider models.Provider
	url      string
	client   *http.Client
}

type endpointRequest struct {
	Prompt string `json:"prompt"`
}

type endpointResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

func (e *endpointClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, _ := json.Marshal(endpointRequest{Prompt: prompt})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: e.provider, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &ProviderError{Provider: e.provider, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}

	var er endpointResponse
	parseErr := json.Unmarshal(b, &er)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || er.Error != "" {
		return "", &ProviderError{Provider: e.provider, Status: resp.StatusCode, Message: er.Error}
	}
	if parseErr != nil {
		return "", &ProviderError{Provider: e.provider, Message: "invalid response: " + parseErr.Error(), Err: parseErr}
	}
	if er.Text == "" {
		return "", &EmptyResponseError{Provider: e.provider}
	}
	return er.Text, nil
}

// Ping sends a HEAD request; any response below 500 counts as reachable.
func (e *endpointClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, e.url, nil)
	if err != nil {
		return err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return &ProviderError{Provider: e.provider, Message: err.Error(), Err: err}
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return &ProviderError{Provider: e.provider, Status: resp.StatusCode}
	}
	return nil
}
