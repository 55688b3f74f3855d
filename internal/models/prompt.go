// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TopicPlaceholder is the literal token inside a prompt template that gets
// replaced with the requested topic before the prompt is sent to the
// completion provider.
const TopicPlaceholder = "{topic}"

// PromptTemplate is a stored, reusable prompt pattern with a substitutable
// topic placeholder. Templates are read-only inputs to the generation
// pipeline; only active templates may be used for generation.
type PromptTemplate struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	Name      string          `json:"name"`
	Content   string          `json:"content"`
	IsActive  bool            `json:"is_active"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
