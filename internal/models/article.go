// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a blog post scoped to a tenant. Articles created by the AI
// generation pipeline have AIGenerated=true and record the exact prompt and
// model used, so every generated piece is reproducible and auditable.
type Article struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"image_url"`
	CategoryID  uuid.UUID  `json:"category_id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	Published   bool       `json:"published"`
	AIGenerated bool       `json:"ai_generated"`
	AIModel     string     `json:"ai_model,omitempty"`
	AIPrompt    string     `json:"ai_prompt,omitempty"`
	Keywords    []string   `json:"keywords"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsPublished reports whether the article is publicly visible.
func (a *Article) IsPublished() bool {
	return a.Published
}
