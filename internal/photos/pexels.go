// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package photos resolves free-text descriptions to stock photo URLs using
// the Pexels search API. Resolution is strictly best-effort: any failure
// yields the fixed default image path, never an error, so a broken or
// unconfigured photo provider can never fail article generation.
package photos

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultImageURL is returned whenever a photo lookup cannot produce a
// usable result.
const DefaultImageURL = "/static/images/article-default.jpg"

// Client searches the Pexels photo API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a Pexels client. An empty API key is allowed; every lookup
// will then fall back to the default image.
func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.pexels.com/v1"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SearchOne returns the direct URL of the first photo matching the query.
// On any failure (missing key, network error, non-200 status, empty result
// set) it returns DefaultImageURL.
func (c *Client) SearchOne(ctx context.Context, query string) string {
	if c.apiKey == "" || query == "" {
		return DefaultImageURL
	}

	reqURL := c.baseURL + "/search?query=" + url.QueryEscape(query) + "&per_page=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		slog.Warn("photo search request build failed", "query", query, "error", err)
		return DefaultImageURL
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("photo search failed, using default image", "query", query, "error", err)
		return DefaultImageURL
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("photo search non-OK status, using default image",
			"query", query, "status", resp.StatusCode)
		return DefaultImageURL
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("photo search read failed, using default image", "query", query, "error", err)
		return DefaultImageURL
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		slog.Warn("photo search unmarshal failed, using default image", "query", query, "error", err)
		return DefaultImageURL
	}

	if len(result.Photos) == 0 || result.Photos[0].Src.Large == "" {
		slog.Debug("photo search empty result, using default image", "query", query)
		return DefaultImageURL
	}

	return result.Photos[0].Src.Large
}

// --- Pexels search API types ---

type photoSrc struct {
	Large string `json:"large"`
}

type photo struct {
	Src photoSrc `json:"src"`
}

type searchResponse struct {
	Photos []photo `json:"photos"`
}
