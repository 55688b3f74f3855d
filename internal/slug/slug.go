// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// stripMarks decomposes accented characters and removes the combining
	// marks, so "Café" becomes "Cafe" before the ASCII filter runs.
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Café, World! 2026" → "cafe-world-2026"
func Generate(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Unique appends a random token to a generated slug so that two articles
// with the same title never collide, even when generated back to back or
// concurrently for the same topic. The datastore's per-tenant unique
// constraint remains the final arbiter.
func Unique(s string) string {
	base := Generate(s)
	if base == "" {
		base = "article"
	}
	return base + "-" + uuid.NewString()[:8]
}
