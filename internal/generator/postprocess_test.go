// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"strings"
	"testing"
)

func TestProcessExtractsTitleAndDescription(t *testing.T) {
	raw := `<h1>The Rise of Edge Computing</h1>
<p>Edge computing moves work closer to users.</p>
<h2>Background</h2>
<p>Second paragraph.</p>`

	got := Process(raw, "edge computing")

	if got.Title != "The Rise of Edge Computing" {
		t.Errorf("title: got %q", got.Title)
	}
	if got.Description != "Edge computing moves work closer to users." {
		t.Errorf("description: got %q", got.Description)
	}
	if strings.Contains(got.Content, "<h1>") {
		t.Error("content must not retain the extracted <h1> block")
	}
	if !strings.Contains(got.Content, "<h2>Background</h2>") {
		t.Error("content body should be preserved")
	}
}

func TestProcessTitleCaseInsensitiveAndAttributes(t *testing.T) {
	raw := `<H1 class="title">Upper Tag</H1><p>Body.</p>`
	got := Process(raw, "x")
	if got.Title != "Upper Tag" {
		t.Errorf("title: got %q", got.Title)
	}
}

func TestProcessTitleFallback(t *testing.T) {
	got := Process("<p>No heading here at all.</p>", "Prompt Engineering")
	if got.Title != "Article about Prompt Engineering" {
		t.Errorf("fallback title: got %q", got.Title)
	}
}

func TestProcessDescriptionFallback(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 40)
	got := Process("<h1>T</h1><div>"+long+"</div>", "x")

	if got.Description == "" {
		t.Fatal("expected fallback description")
	}
	if len([]rune(got.Description)) > 200 {
		t.Errorf("fallback description too long: %d runes", len([]rune(got.Description)))
	}
}

func TestProcessStripsNestedTagsFromTitle(t *testing.T) {
	got := Process(`<h1>A <em>styled</em> title</h1><p>d</p>`, "x")
	if got.Title != "A styled title" {
		t.Errorf("title: got %q", got.Title)
	}
}

func TestProcessCollectsImagePlaceholders(t *testing.T) {
	raw := `<h1>T</h1>
<p>Intro.</p>
[IMAGE: "a mountain lake at dawn"]
<p>More.</p>
[IMAGE: "a mountain lake at dawn"]
[IMAGE: "city skyline"]`

	got := Process(raw, "x")

	if len(got.Images) != 2 {
		t.Fatalf("images: got %d, want 2 (identical directives deduplicated)", len(got.Images))
	}
	if got.Images[0].Description != "a mountain lake at dawn" {
		t.Errorf("first description: got %q", got.Images[0].Description)
	}
	if got.Images[0].Placeholder != `[IMAGE: "a mountain lake at dawn"]` {
		t.Errorf("placeholder text: got %q", got.Images[0].Placeholder)
	}
}

func TestProcessNoPlaceholdersPassesThrough(t *testing.T) {
	raw := `<h1>T</h1><p>No images.</p>`
	got := Process(raw, "x")
	if len(got.Images) != 0 {
		t.Errorf("images: got %d, want 0", len(got.Images))
	}
	if got.Content != "<p>No images.</p>" {
		t.Errorf("content: got %q", got.Content)
	}
}

func TestReplaceImagesReplacesAllOccurrences(t *testing.T) {
	content := `a [IMAGE: "lake"] b [IMAGE: "lake"] c`
	images := []ImagePlaceholder{{Placeholder: `[IMAGE: "lake"]`, Description: "lake"}}
	urls := map[string]string{"lake": "https://img.example.com/lake.jpg"}

	got := ReplaceImages(content, images, urls)

	if strings.Contains(got, "[IMAGE:") {
		t.Errorf("placeholder remains: %q", got)
	}
	if strings.Count(got, `https://img.example.com/lake.jpg`) != 2 {
		t.Errorf("both occurrences should reference the same URL: %q", got)
	}
	if !strings.Contains(got, `alt="lake"`) {
		t.Errorf("img tag should carry alt text: %q", got)
	}
}

func TestReplaceImagesLeavesUnresolvedPlaceholders(t *testing.T) {
	content := `x [IMAGE: "lake"] y`
	images := []ImagePlaceholder{{Placeholder: `[IMAGE: "lake"]`, Description: "lake"}}

	got := ReplaceImages(content, images, map[string]string{})
	if got != content {
		t.Errorf("unresolved placeholder must pass through: %q", got)
	}
}

func TestSanitizeStripsScripts(t *testing.T) {
	dirty := `<p>ok</p><script>alert(1)</script><img src="https://img.example.com/a.jpg" alt="a">`
	got := Sanitize(dirty)

	if strings.Contains(got, "<script") {
		t.Errorf("script survived sanitization: %q", got)
	}
	if !strings.Contains(got, "<p>ok</p>") {
		t.Errorf("paragraph should survive: %q", got)
	}
	if !strings.Contains(got, "<img") {
		t.Errorf("image should survive: %q", got)
	}
}
