// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a provider failure so callers can decide how to
// react: rate limits are retryable by the caller, credential problems are
// fatal until reconfigured, everything else is surfaced as-is.
type ErrorKind int

const (
	// KindOther covers network errors, 5xx responses, and malformed payloads.
	KindOther ErrorKind = iota

	// KindRateLimited marks HTTP 429 responses.
	KindRateLimited

	// KindUnauthorized marks HTTP 401/403 responses — bad or missing
	// credentials, a configuration problem rather than a transient one.
	KindUnauthorized
)

// String returns a short label for the kind, used in error messages and logs.
func (k ErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "other"
	}
}

// ProviderError is returned by every provider's Complete method on failure.
type ProviderError struct {
	Provider string
	Kind     ErrorKind
	Status   int // HTTP status code, 0 for transport errors
	Message  string
	Err      error // wrapped cause, may be nil
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status code to an ErrorKind.
func classifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindUnauthorized
	default:
		return KindOther
	}
}

// statusError builds a ProviderError from a non-2xx provider response.
func statusError(provider string, status int, body []byte) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     classifyStatus(status),
		Status:   status,
		Message:  string(body),
	}
}

// transportError wraps a network/marshalling failure as KindOther.
func transportError(provider, msg string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Kind:     KindOther,
		Message:  msg,
		Err:      err,
	}
}

// IsRateLimited reports whether err is a provider rate-limit failure.
func IsRateLimited(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindRateLimited
}

// IsUnauthorized reports whether err is a provider credential failure.
func IsUnauthorized(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == KindUnauthorized
}
