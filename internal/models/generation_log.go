// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// GenerationLog is an append-only audit record for one generation unit.
// Writing it is best-effort: a failed log write never fails the generation
// request it describes.
type GenerationLog struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	PromptID   *uuid.UUID `json:"prompt_id,omitempty"`
	ArticleID  *uuid.UUID `json:"article_id,omitempty"`
	Success    bool       `json:"success"`
	TokensUsed *int       `json:"tokens_used,omitempty"`
	DurationMS *float64   `json:"duration_ms,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
