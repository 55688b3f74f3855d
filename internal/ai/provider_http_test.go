// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ---------- Helpers ----------

// newTestServer creates an httptest.Server that responds with the given status
// code and body bytes. The caller must call Close on the returned server.
func newTestServer(t *testing.T, statusCode int, body []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		w.Write(body)
	}))
}

// openAISuccessBody builds a JSON body matching the OpenAI chat completions
// response format with a single choice containing the given text.
func openAISuccessBody(text string, tokens int) []byte {
	resp := openAIResponse{
		Model: "gpt-4o",
		Choices: []openAIChoice{
			{Message: openAIMessage{Role: "assistant", Content: text}},
		},
		Usage: openAIUsage{TotalTokens: tokens},
	}
	b, _ := json.Marshal(resp)
	return b
}

// claudeSuccessBody builds a JSON body matching the Anthropic Messages
// response format with a single text content block.
func claudeSuccessBody(text string) []byte {
	resp := claudeResponse{
		Model: "claude-sonnet-4-5",
		Content: []claudeContentBlock{
			{Type: "text", Text: text},
		},
		Usage: claudeUsage{InputTokens: 12, OutputTokens: 30},
	}
	b, _ := json.Marshal(resp)
	return b
}

// geminiSuccessBody builds a JSON body matching the Gemini generateContent
// response format with a single candidate containing the given text.
func geminiSuccessBody(text string) []byte {
	resp := geminiResponse{
		Candidates: []geminiCandidate{
			{Content: geminiContent{Parts: []geminiPart{{Text: text}}}},
		},
		UsageMetadata: geminiUsageMetadata{TotalTokenCount: 55},
	}
	b, _ := json.Marshal(resp)
	return b
}

// =====================================================================
// OpenAI Provider Tests
// =====================================================================

func TestOpenAIComplete_Success(t *testing.T) {
	want := "<h1>Hello</h1><p>World</p>"
	srv := newTestServer(t, http.StatusOK, openAISuccessBody(want, 123))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: srv.URL,
	})

	got, err := p.Complete(context.Background(), "Write an article", 1024)
	if err != nil {
		t.Fatalf("Complete: unexpected error: %v", err)
	}
	if got.Text != want {
		t.Errorf("text: got %q, want %q", got.Text, want)
	}
	if got.TokensUsed != 123 {
		t.Errorf("tokens: got %d, want 123", got.TokensUsed)
	}
	if got.Model != "gpt-4o" {
		t.Errorf("model: got %q, want %q", got.Model, "gpt-4o")
	}
}

func TestOpenAIComplete_VerifiesRequest(t *testing.T) {
	var capturedHeaders http.Header
	var capturedBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		capturedBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(openAISuccessBody("ok", 1))
	}))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{
		APIKey:  "sk-test-12345",
		Model:   "gpt-4o",
		BaseURL: srv.URL,
	})

	if _, err := p.Complete(context.Background(), "the prompt", 2048); err != nil {
		t.Fatalf("Complete: unexpected error: %v", err)
	}

	if got := capturedHeaders.Get("Authorization"); got != "Bearer sk-test-12345" {
		t.Errorf("Authorization header: got %q", got)
	}
	if got := capturedHeaders.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type: got %q", got)
	}

	var reqBody openAIRequest
	if err := json.Unmarshal(capturedBody, &reqBody); err != nil {
		t.Fatalf("unmarshal request body: %v", err)
	}
	if reqBody.Model != "gpt-4o" {
		t.Errorf("request model: got %q", reqBody.Model)
	}
	if reqBody.MaxTokens != 2048 {
		t.Errorf("max_tokens: got %d, want 2048", reqBody.MaxTokens)
	}
	if len(reqBody.Messages) != 1 || reqBody.Messages[0].Role != "user" || reqBody.Messages[0].Content != "the prompt" {
		t.Errorf("messages: got %+v", reqBody.Messages)
	}
}

func TestOpenAIComplete_RateLimited(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"error":"rate limit"}`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})

	_, err := p.Complete(context.Background(), "x", 10)
	if err == nil {
		t.Fatal("expected error for HTTP 429, got nil")
	}
	if !IsRateLimited(err) {
		t.Errorf("expected rate-limited classification, got %v", err)
	}

	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if pe.Status != http.StatusTooManyRequests {
		t.Errorf("status: got %d, want 429", pe.Status)
	}
}

func TestOpenAIComplete_Unauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := newTestServer(t, status, []byte(`{"error":"bad key"}`))

		p := newOpenAI(ProviderConfig{APIKey: "bad", Model: "gpt-4o", BaseURL: srv.URL})
		_, err := p.Complete(context.Background(), "x", 10)
		srv.Close()

		if !IsUnauthorized(err) {
			t.Errorf("status %d: expected unauthorized classification, got %v", status, err)
		}
		if IsRateLimited(err) {
			t.Errorf("status %d: must not classify as rate-limited", status)
		}
	}
}

func TestOpenAIComplete_ServerErrorIsOther(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, []byte(`{"error":"boom"}`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})
	_, err := p.Complete(context.Background(), "x", 10)
	if err == nil {
		t.Fatal("expected error for HTTP 500, got nil")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
	if pe.Kind != KindOther {
		t.Errorf("kind: got %v, want other", pe.Kind)
	}
}

func TestOpenAIComplete_EmptyChoices(t *testing.T) {
	resp := openAIResponse{Model: "gpt-4o"}
	b, _ := json.Marshal(resp)
	srv := newTestServer(t, http.StatusOK, b)
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})
	got, err := p.Complete(context.Background(), "x", 10)
	if err != nil {
		t.Fatalf("empty choices must not error: %v", err)
	}
	if got.Text != "" {
		t.Errorf("text: got %q, want empty", got.Text)
	}
}

func TestOpenAIComplete_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, []byte(`{not json`))
	defer srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: srv.URL})
	_, err := p.Complete(context.Background(), "x", 10)
	if err == nil {
		t.Fatal("expected error for malformed JSON, got nil")
	}
}

func TestOpenAIComplete_NetworkError(t *testing.T) {
	// Point at a server that is already closed.
	srv := newTestServer(t, http.StatusOK, nil)
	url := srv.URL
	srv.Close()

	p := newOpenAI(ProviderConfig{APIKey: "k", Model: "gpt-4o", BaseURL: url})
	_, err := p.Complete(context.Background(), "x", 10)
	if err == nil {
		t.Fatal("expected network error, got nil")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) || pe.Kind != KindOther {
		t.Errorf("expected KindOther transport error, got %v", err)
	}
}

// =====================================================================
// Claude Provider Tests
// =====================================================================

func TestClaudeComplete_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, claudeSuccessBody("generated article"))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", Model: "claude-sonnet-4-5", BaseURL: srv.URL})
	got, err := p.Complete(context.Background(), "Write", 512)
	if err != nil {
		t.Fatalf("Complete: unexpected error: %v", err)
	}
	if got.Text != "generated article" {
		t.Errorf("text: got %q", got.Text)
	}
	if got.TokensUsed != 42 {
		t.Errorf("tokens: got %d, want 42 (input+output)", got.TokensUsed)
	}
}

func TestClaudeComplete_VerifiesHeaders(t *testing.T) {
	var capturedHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedHeaders = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		w.Write(claudeSuccessBody("ok"))
	}))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "claude-key", Model: "claude-sonnet-4-5", BaseURL: srv.URL})
	if _, err := p.Complete(context.Background(), "x", 10); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got := capturedHeaders.Get("x-api-key"); got != "claude-key" {
		t.Errorf("x-api-key: got %q", got)
	}
	if got := capturedHeaders.Get("anthropic-version"); got == "" {
		t.Error("anthropic-version header missing")
	}
}

func TestClaudeComplete_RateLimited(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, []byte(`{"type":"error"}`))
	defer srv.Close()

	p := newClaude(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	_, err := p.Complete(context.Background(), "x", 10)
	if !IsRateLimited(err) {
		t.Errorf("expected rate-limited, got %v", err)
	}
}

// =====================================================================
// Gemini Provider Tests
// =====================================================================

func TestGeminiComplete_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, geminiSuccessBody("gemini text"))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "gemini-2.0-flash", BaseURL: srv.URL})
	got, err := p.Complete(context.Background(), "x", 256)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Text != "gemini text" {
		t.Errorf("text: got %q", got.Text)
	}
	if got.TokensUsed != 55 {
		t.Errorf("tokens: got %d, want 55", got.TokensUsed)
	}
}

func TestGeminiComplete_EmptyCandidates(t *testing.T) {
	b, _ := json.Marshal(geminiResponse{})
	srv := newTestServer(t, http.StatusOK, b)
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "k", Model: "m", BaseURL: srv.URL})
	got, err := p.Complete(context.Background(), "x", 10)
	if err != nil {
		t.Fatalf("empty candidates must not error: %v", err)
	}
	if got.Text != "" {
		t.Errorf("text: got %q, want empty", got.Text)
	}
}

func TestGeminiComplete_Unauthorized(t *testing.T) {
	srv := newTestServer(t, http.StatusForbidden, []byte(`{"error":{}}`))
	defer srv.Close()

	p := newGemini(ProviderConfig{APIKey: "bad", Model: "m", BaseURL: srv.URL})
	_, err := p.Complete(context.Background(), "x", 10)
	if !IsUnauthorized(err) {
		t.Errorf("expected unauthorized, got %v", err)
	}
}

// =====================================================================
// Mistral Provider Tests (OpenAI wire format)
// =====================================================================

func TestMistralComplete_Success(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, openAISuccessBody("mistral text", 9))
	defer srv.Close()

	p := newMistral(ProviderConfig{APIKey: "k", Model: "mistral-large-latest", BaseURL: srv.URL})
	got, err := p.Complete(context.Background(), "x", 10)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.Text != "mistral text" {
		t.Errorf("text: got %q", got.Text)
	}
	if p.Name() != "mistral" {
		t.Errorf("name: got %q", p.Name())
	}
}
