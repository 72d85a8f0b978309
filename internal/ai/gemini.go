package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"edunex/internal/models"
)

// DefaultGeminiBaseURL is the Generative Language API root.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiClient calls generateContent over REST.
type geminiClient struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float32
	maxTokens   int
	system      string
	client      *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		FinishReason string        `json:"finishReason"`
		Content      geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiModel is one entry of the Gemini model listing.
type GeminiModel struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName,omitempty"`
	Description                string   `json:"description,omitempty"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods,omitempty"`
}

// GeminiModels is the result of listing Gemini models.
type GeminiModels struct {
	APIVersionTried string        `json:"apiVersionTried"`
	Models          []GeminiModel `json:"models"`
}

func (g *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}},
		}},
		GenerationConfig: geminiGenerationConfig{Temperature: g.temperature, MaxOutputTokens: g.maxTokens},
	}
	if g.system != "" {
		req.SystemInstruction = &geminiContent{Role: "system", Parts: []geminiPart{{Text: g.system}}}
	}
	body, _ := json.Marshal(req)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: models.ProviderGemini, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", geminiStatusError(resp)
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", &ProviderError{Provider: models.ProviderGemini, Message: "invalid response: " + err.Error(), Err: err}
	}
	if len(gr.Candidates) == 0 {
		return "", &EmptyResponseError{Provider: models.ProviderGemini}
	}
	candidate := gr.Candidates[0]
	if candidate.FinishReason == "SAFETY" {
		return "", &ProviderError{Provider: models.ProviderGemini, Status: http.StatusBadRequest, Message: "Blocked by safety filter", Err: ErrSafetyBlocked}
	}

	var parts []string
	for _, p := range candidate.Content.Parts {
		if p.Text != "" {
			parts = append(parts, p.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if text == "" {
		return "", &EmptyResponseError{Provider: models.ProviderGemini}
	}
	return text, nil
}

// ListModels lists the models visible to the key, trying API v1 first and
// falling back to v1beta.
func (g *geminiClient) ListModels(ctx context.Context) (*GeminiModels, error) {
	var lastErr error
	for _, version := range []string{"v1", "v1beta"} {
		list, err := g.listModels(ctx, version)
		if err == nil {
			return &GeminiModels{APIVersionTried: version, Models: list}, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (g *geminiClient) listModels(ctx context.Context, version string) ([]GeminiModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s/models", g.baseURL, version), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: models.ProviderGemini, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, geminiStatusError(resp)
	}

	var body struct {
		Models []GeminiModel `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &ProviderError{Provider: models.ProviderGemini, Message: "invalid response: " + err.Error(), Err: err}
	}
	if body.Models == nil {
		body.Models = []GeminiModel{}
	}
	return body.Models, nil
}

func (g *geminiClient) Ping(ctx context.Context) error {
	_, err := g.ListModels(ctx)
	return err
}

func geminiStatusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var eb geminiErrorBody
	msg := ""
	if json.Unmarshal(b, &eb) == nil {
		msg = eb.Error.Message
	}
	return &ProviderError{Provider: models.ProviderGemini, Status: resp.StatusCode, Message: msg}
}
