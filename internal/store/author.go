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

// AuthorStore handles author database operations.
type AuthorStore struct {
	db *sql.DB
}

// NewAuthorStore creates a new AuthorStore with the given database connection.
func NewAuthorStore(db *sql.DB) *AuthorStore {
	return &AuthorStore{db: db}
}

// List returns all authors for a tenant, ordered by name.
func (s *AuthorStore) List(tenantID uuid.UUID) ([]models.Author, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, name, email, bio, created_at, updated_at
		FROM authors WHERE tenant_id = $1
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []models.Author
	for rows.Next() {
		var a models.Author
		if err := rows.Scan(
			&a.ID, &a.TenantID, &a.Name, &a.Email, &a.Bio, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

// FindByID retrieves an author by its UUID. Returns nil if not found.
func (s *AuthorStore) FindByID(tenantID, id uuid.UUID) (*models.Author, error) {
	a := &models.Author{}
	err := s.db.QueryRow(`
		SELECT id, tenant_id, name, email, bio, created_at, updated_at
		FROM authors WHERE tenant_id = $1 AND id = $2
	`, tenantID, id).Scan(
		&a.ID, &a.TenantID, &a.Name, &a.Email, &a.Bio, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find author by id: %w", err)
	}
	return a, nil
}

// Create inserts a new author and returns it with the generated ID.
func (s *AuthorStore) Create(tenantID uuid.UUID, a *models.Author) (*models.Author, error) {
	result := &models.Author{}
	err := s.db.QueryRow(`
		INSERT INTO authors (tenant_id, name, email, bio)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tenant_id, name, email, bio, created_at, updated_at
	`, tenantID, a.Name, a.Email, a.Bio).Scan(
		&result.ID, &result.TenantID, &result.Name, &result.Email,
		&result.Bio, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return result, nil
}

// Update modifies an existing author.
func (s *AuthorStore) Update(tenantID uuid.UUID, a *models.Author) error {
	_, err := s.db.Exec(`
		UPDATE authors SET name = $1, email = $2, bio = $3, updated_at = NOW()
		WHERE tenant_id = $4 AND id = $5
	`, a.Name, a.Email, a.Bio, tenantID, a.ID)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	return nil
}

// Delete removes an author by ID.
func (s *AuthorStore) Delete(tenantID, id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM authors WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return nil
}
