// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

// openAIProvider implements the Provider interface using the OpenAI
// chat completions API (POST /v1/chat/completions).
type openAIProvider struct {
	name   string
	config ProviderConfig
	client *http.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	return &openAIProvider{
		name:   "openai",
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// newMistral creates a Mistral provider. Mistral's chat completions API is
// wire-compatible with OpenAI's, so it shares the same implementation.
func newMistral(cfg ProviderConfig) *openAIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	return &openAIProvider{
		name:   "mistral",
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *openAIProvider) Name() string { return p.name }

// Complete sends a chat completion request and returns the first choice.
func (p *openAIProvider) Complete(ctx context.Context, prompt string, maxTokens int) (Completion, error) {
	body := openAIRequest{
		Model:     p.config.Model,
		MaxTokens: maxTokens,
		Messages: []openAIMessage{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Completion{}, transportError(p.name, "marshal request", err)
	}

	url := p.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Completion{}, transportError(p.name, "build request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return Completion{}, transportError(p.name, "http call", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, transportError(p.name, "read body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Completion{}, statusError(p.name, resp.StatusCode, respBody)
	}

	var result openAIResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Completion{}, transportError(p.name, "unmarshal response", err)
	}

	c := Completion{
		Model:      result.Model,
		TokensUsed: result.Usage.TotalTokens,
	}
	if c.Model == "" {
		c.Model = p.config.Model
	}
	// An empty choices list degrades to an empty completion, not an error.
	if len(result.Choices) > 0 {
		c.Text = result.Choices[0].Message.Content
	}
	return c, nil
}

// --- OpenAI-compatible request/response types ---
// Used by both the OpenAI and Mistral providers.

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens,omitempty"`
	Messages  []openAIMessage `json:"messages"`
}

type openAIResponse struct {
	Model   string         `json:"model"`
	Choices []openAIChoice `json:"choices"`
	Usage   openAIUsage    `json:"usage"`
}

type openAIChoice struct {
	Message openAIMessage `json:"message"`
}

type openAIUsage struct {
	TotalTokens int `json:"total_tokens"`
}
