// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package photos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchOne_Success(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"photos":[{"src":{"large":"https://images.example.com/coffee.jpg"}}]}`))
	}))
	defer srv.Close()

	c := New("px-key", srv.URL)
	got := c.SearchOne(context.Background(), "coffee beans")

	if got != "https://images.example.com/coffee.jpg" {
		t.Errorf("SearchOne: got %q", got)
	}
	if gotAuth != "px-key" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
	if gotQuery != "coffee beans" {
		t.Errorf("query: got %q", gotQuery)
	}
}

func TestSearchOne_EmptyResultFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos":[]}`))
	}))
	defer srv.Close()

	c := New("px-key", srv.URL)
	if got := c.SearchOne(context.Background(), "nothing"); got != DefaultImageURL {
		t.Errorf("empty result: got %q, want default", got)
	}
}

func TestSearchOne_HTTPErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New("px-key", srv.URL)
	if got := c.SearchOne(context.Background(), "anything"); got != DefaultImageURL {
		t.Errorf("HTTP error: got %q, want default", got)
	}
}

func TestSearchOne_NetworkErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New("px-key", url)
	if got := c.SearchOne(context.Background(), "anything"); got != DefaultImageURL {
		t.Errorf("network error: got %q, want default", got)
	}
}

func TestSearchOne_MalformedJSONFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{broken`))
	}))
	defer srv.Close()

	c := New("px-key", srv.URL)
	if got := c.SearchOne(context.Background(), "anything"); got != DefaultImageURL {
		t.Errorf("malformed JSON: got %q, want default", got)
	}
}

func TestSearchOne_NoAPIKeyFallsBack(t *testing.T) {
	c := New("", "")
	if got := c.SearchOne(context.Background(), "anything"); got != DefaultImageURL {
		t.Errorf("no key: got %q, want default", got)
	}
}
