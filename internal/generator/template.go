// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"strings"

	"promptpress/internal/models"
)

// Substitute fills the topic placeholder in a prompt template. The
// replacement is a single-pass literal substitution: a topic that itself
// contains the placeholder token is never re-expanded. A template without
// the placeholder is returned verbatim — that is a supported way to write
// topic-independent prompts, not an error.
func Substitute(template, topic string) string {
	return strings.ReplaceAll(template, models.TopicPlaceholder, topic)
}

// defaultPromptTemplate drives generation when the request names no stored
// prompt template.
const defaultPromptTemplate = `Write a complete, publication-ready blog article about "{topic}".

Format the article as clean HTML:
- Begin with exactly one <h1> heading containing the article title.
- Follow it with an introductory <p> paragraph that summarises the article.
- Structure the body with <h2> subheadings and <p> paragraphs.
- Where an illustration would help the reader, insert a directive of the form [IMAGE: "short description of the image"] on its own line.
- Use only standard HTML tags. Do not wrap the output in code fences and do not add commentary before or after the article.`
