// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides a unified interface for text completion against
// multiple LLM providers (OpenAI, Claude, Gemini, Mistral). Each provider
// implements the Provider interface, and the Registry selects the active
// one by name.
package ai

import (
	"context"
	"fmt"
	"sync"
)

// Completion is the result of a single text-completion call.
type Completion struct {
	// Text is the first candidate's text. Empty when the provider returned
	// no candidates — that is not an error.
	Text string

	// Model is the model that produced the text, as reported by the
	// provider (falls back to the configured model name).
	Model string

	// TokensUsed is the total token count reported by the provider,
	// or zero when the provider does not report usage.
	TokensUsed int
}

// Provider defines the interface that all completion providers implement.
// Each provider handles its own HTTP communication and response parsing.
// Providers never retry; retry policy belongs to the caller.
type Provider interface {
	// Complete sends a prompt to the LLM with the given token budget and
	// returns the first candidate. Failures are returned as *ProviderError
	// so callers can distinguish rate limiting from configuration problems.
	Complete(ctx context.Context, prompt string, maxTokens int) (Completion, error)

	// Name returns the provider identifier (e.g., "openai", "claude").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Registry manages available completion providers and selects the active
// one. It supports runtime switching by name. All methods are safe for
// concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry creates a registry and initialises providers for every config
// that has a non-empty API key. Providers without keys are silently skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		case "claude":
			r.providers[name] = newClaude(cfg)
		case "gemini":
			r.providers[name] = newGemini(cfg)
		case "mistral":
			r.providers[name] = newMistral(cfg)
		}
	}

	return r
}

// Complete calls the active provider's Complete method.
func (r *Registry) Complete(ctx context.Context, prompt string, maxTokens int) (Completion, error) {
	p, err := r.Active()
	if err != nil {
		return Completion{}, err
	}
	return p.Complete(ctx, prompt, maxTokens)
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// SetActive switches the active provider at runtime. Returns an error if
// the named provider has no API key configured.
func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("ai: provider %q is not available (no API key?)", name)
	}
	r.active = name
	return nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers that have valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider in the registry. This allows injecting
// custom providers at runtime (e.g. for testing).
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// HasProvider checks whether a named provider is configured and available.
func (r *Registry) HasProvider(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.providers[name]
	return ok
}
