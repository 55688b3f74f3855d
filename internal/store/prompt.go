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

// PromptStore handles prompt template database operations.
type PromptStore struct {
	db *sql.DB
}

// NewPromptStore creates a new PromptStore with the given database connection.
func NewPromptStore(db *sql.DB) *PromptStore {
	return &PromptStore{db: db}
}

// List returns all prompt templates for a tenant, active and inactive,
// ordered by name. Used by the admin API.
func (s *PromptStore) List(tenantID uuid.UUID) ([]models.PromptTemplate, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, name, content, is_active, metadata, created_at, updated_at
		FROM prompt_templates WHERE tenant_id = $1
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list prompt templates: %w", err)
	}
	defer rows.Close()

	var templates []models.PromptTemplate
	for rows.Next() {
		var t models.PromptTemplate
		if err := rows.Scan(
			&t.ID, &t.TenantID, &t.Name, &t.Content, &t.IsActive,
			&t.Metadata, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan prompt template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// FindByID retrieves a prompt template by its UUID regardless of active
// state. Returns nil if not found.
func (s *PromptStore) FindByID(tenantID, id uuid.UUID) (*models.PromptTemplate, error) {
	t := &models.PromptTemplate{}
	err := s.db.QueryRow(`
		SELECT id, tenant_id, name, content, is_active, metadata, created_at, updated_at
		FROM prompt_templates WHERE tenant_id = $1 AND id = $2
	`, tenantID, id).Scan(
		&t.ID, &t.TenantID, &t.Name, &t.Content, &t.IsActive,
		&t.Metadata, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find prompt template by id: %w", err)
	}
	return t, nil
}

// FindActive retrieves an active prompt template by its UUID. A template
// that exists but is deactivated comes back nil, same as a missing one, so
// generation can never use a retired prompt.
func (s *PromptStore) FindActive(tenantID, id uuid.UUID) (*models.PromptTemplate, error) {
	t := &models.PromptTemplate{}
	err := s.db.QueryRow(`
		SELECT id, tenant_id, name, content, is_active, metadata, created_at, updated_at
		FROM prompt_templates
		WHERE tenant_id = $1 AND id = $2 AND is_active = TRUE
	`, tenantID, id).Scan(
		&t.ID, &t.TenantID, &t.Name, &t.Content, &t.IsActive,
		&t.Metadata, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find active prompt template: %w", err)
	}
	return t, nil
}

// Create inserts a new prompt template and returns it with the generated ID.
func (s *PromptStore) Create(tenantID uuid.UUID, t *models.PromptTemplate) (*models.PromptTemplate, error) {
	result := &models.PromptTemplate{}
	err := s.db.QueryRow(`
		INSERT INTO prompt_templates (tenant_id, name, content, is_active, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, tenant_id, name, content, is_active, metadata, created_at, updated_at
	`, tenantID, t.Name, t.Content, t.IsActive, t.Metadata).Scan(
		&result.ID, &result.TenantID, &result.Name, &result.Content,
		&result.IsActive, &result.Metadata, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create prompt template: %w", err)
	}
	return result, nil
}

// Update modifies an existing prompt template.
func (s *PromptStore) Update(tenantID uuid.UUID, t *models.PromptTemplate) error {
	_, err := s.db.Exec(`
		UPDATE prompt_templates SET
			name = $1, content = $2, is_active = $3, metadata = $4, updated_at = NOW()
		WHERE tenant_id = $5 AND id = $6
	`, t.Name, t.Content, t.IsActive, t.Metadata, tenantID, t.ID)
	if err != nil {
		return fmt.Errorf("update prompt template: %w", err)
	}
	return nil
}

// Delete removes a prompt template by ID. Generation logs referencing it
// keep their prompt_id through ON DELETE SET NULL.
func (s *PromptStore) Delete(tenantID, id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM prompt_templates WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete prompt template: %w", err)
	}
	return nil
}
