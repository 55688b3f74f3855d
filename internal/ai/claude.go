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

// claudeProvider implements the Provider interface using the Anthropic
// Messages API (POST /v1/messages).
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

// newClaude creates a new Anthropic Claude provider.
func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	return &claudeProvider{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *claudeProvider) Name() string { return "claude" }

// Complete sends a message to the Anthropic Messages API.
func (p *claudeProvider) Complete(ctx context.Context, prompt string, maxTokens int) (Completion, error) {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	body := claudeRequest{
		Model:     p.config.Model,
		MaxTokens: maxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Completion{}, transportError("claude", "marshal request", err)
	}

	url := p.config.BaseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Completion{}, transportError("claude", "build request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.config.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.client.Do(req)
	if err != nil {
		return Completion{}, transportError("claude", "http call", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Completion{}, transportError("claude", "read body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Completion{}, statusError("claude", resp.StatusCode, respBody)
	}

	var result claudeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Completion{}, transportError("claude", "unmarshal response", err)
	}

	c := Completion{
		Model:      result.Model,
		TokensUsed: result.Usage.InputTokens + result.Usage.OutputTokens,
	}
	if c.Model == "" {
		c.Model = p.config.Model
	}
	for _, block := range result.Content {
		if block.Type == "text" {
			c.Text = block.Text
			break
		}
	}
	return c, nil
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeUsage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type claudeResponse struct {
	Model   string               `json:"model"`
	Content []claudeContentBlock `json:"content"`
	Usage   claudeUsage          `json:"usage"`
}
