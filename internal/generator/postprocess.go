// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// The post-processor deliberately uses narrow, non-greedy pattern matches
// instead of a full HTML parser: it extracts the first <h1> and first <p>
// and nothing more. Malformed or unbalanced markup is passed through as-is.
var (
	h1Pattern    = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
	pPattern     = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	imagePattern = regexp.MustCompile(`\[IMAGE:\s*"([^"]+)"\]`)
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// descriptionLimit caps the fallback description length when no paragraph
// can be extracted.
const descriptionLimit = 160

// sanitizer strips scripts, event handlers, and other unsafe markup from
// generated content before it is persisted. The UGC policy keeps headings,
// paragraphs, lists, links, and images.
var sanitizer = bluemonday.UGCPolicy()

// ImagePlaceholder is one `[IMAGE: "description"]` directive found in
// generated markup. Placeholder is the exact source text, so replacement can
// be a literal substring substitution.
type ImagePlaceholder struct {
	Placeholder string
	Description string
}

// Processed is the outcome of post-processing one generated document.
type Processed struct {
	Title       string
	Description string
	Content     string
	Images      []ImagePlaceholder
}

// Process extracts title and description from raw generated markup, removes
// the title heading from the content (the renderer adds the title itself),
// and collects image placeholder directives for later resolution. It is pure:
// no network calls, no persistence.
func Process(raw, topic string) Processed {
	content := strings.TrimSpace(raw)

	title := ""
	if m := h1Pattern.FindStringSubmatch(content); m != nil {
		title = plainText(m[1])
		// Drop the heading so the title is not rendered twice.
		content = strings.Replace(content, m[0], "", 1)
		content = strings.TrimSpace(content)
	}
	if title == "" {
		title = fmt.Sprintf("Article about %s", topic)
	}

	description := ""
	if m := pPattern.FindStringSubmatch(content); m != nil {
		description = plainText(m[1])
	}
	if description == "" {
		description = truncatePlain(content, descriptionLimit)
	}

	return Processed{
		Title:       title,
		Description: description,
		Content:     content,
		Images:      collectImages(content),
	}
}

// collectImages finds image placeholder directives, deduplicated by their
// exact source text so repeated identical directives resolve once and are
// replaced consistently.
func collectImages(content string) []ImagePlaceholder {
	var images []ImagePlaceholder
	seen := make(map[string]bool)
	for _, m := range imagePattern.FindAllStringSubmatch(content, -1) {
		if seen[m[0]] {
			continue
		}
		seen[m[0]] = true
		images = append(images, ImagePlaceholder{Placeholder: m[0], Description: m[1]})
	}
	return images
}

// ReplaceImages substitutes every placeholder occurrence with an <img> tag
// pointing at its resolved URL. urls is keyed by the placeholder's
// Description; placeholders without a resolved URL are left untouched.
func ReplaceImages(content string, images []ImagePlaceholder, urls map[string]string) string {
	for _, img := range images {
		url, ok := urls[img.Description]
		if !ok || url == "" {
			continue
		}
		tag := fmt.Sprintf(`<img src=%q alt=%q>`, url, img.Description)
		content = strings.ReplaceAll(content, img.Placeholder, tag)
	}
	return content
}

// Sanitize removes unsafe markup from generated HTML.
func Sanitize(content string) string {
	return sanitizer.Sanitize(content)
}

// plainText strips tags, unescapes entities, and collapses whitespace.
func plainText(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// truncatePlain returns the first limit runes of the tag-stripped content.
func truncatePlain(s string, limit int) string {
	s = plainText(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}
