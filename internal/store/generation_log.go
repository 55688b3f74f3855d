// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"promptpress/internal/models"
)

// GenerationLogStore handles the append-only generation audit log.
type GenerationLogStore struct {
	db *sql.DB
}

// NewGenerationLogStore creates a new GenerationLogStore with the given
// database connection.
func NewGenerationLogStore(db *sql.DB) *GenerationLogStore {
	return &GenerationLogStore{db: db}
}

// Create appends one audit entry.
func (s *GenerationLogStore) Create(tenantID uuid.UUID, l *models.GenerationLog) error {
	_, err := s.db.Exec(`
		INSERT INTO generation_logs (tenant_id, prompt_id, article_id, success, tokens_used, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, tenantID, l.PromptID, l.ArticleID, l.Success, l.TokensUsed, l.DurationMS)
	if err != nil {
		return fmt.Errorf("create generation log: %w", err)
	}
	return nil
}

// List returns the most recent audit entries for a tenant, up to limit.
func (s *GenerationLogStore) List(tenantID uuid.UUID, limit int) ([]models.GenerationLog, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT id, tenant_id, prompt_id, article_id, success, tokens_used, duration_ms, created_at
		FROM generation_logs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list generation logs: %w", err)
	}
	defer rows.Close()

	var logs []models.GenerationLog
	for rows.Next() {
		var l models.GenerationLog
		if err := rows.Scan(
			&l.ID, &l.TenantID, &l.PromptID, &l.ArticleID, &l.Success,
			&l.TokensUsed, &l.DurationMS, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan generation log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
