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

// CategoryStore handles category database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// List returns all categories for a tenant with their published article
// counts, ordered by name.
func (s *CategoryStore) List(tenantID uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.tenant_id, c.name, c.slug, c.description,
		       c.created_at, c.updated_at,
		       COUNT(a.id) FILTER (WHERE a.published) AS article_count
		FROM categories c
		LEFT JOIN articles a ON a.category_id = c.id
		WHERE c.tenant_id = $1
		GROUP BY c.id
		ORDER BY c.name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.Description,
			&c.CreatedAt, &c.UpdatedAt, &c.ArticleCount,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(tenantID, id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, tenant_id, name, slug, description, created_at, updated_at
		FROM categories WHERE tenant_id = $1 AND id = $2
	`, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by its slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(tenantID uuid.UUID, slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, tenant_id, name, slug, description, created_at, updated_at
		FROM categories WHERE tenant_id = $1 AND slug = $2
	`, tenantID, slug).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with the generated ID.
func (s *CategoryStore) Create(tenantID uuid.UUID, c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (tenant_id, name, slug, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, tenant_id, name, slug, description, created_at, updated_at
	`, tenantID, c.Name, c.Slug, c.Description).Scan(
		&result.ID, &result.TenantID, &result.Name, &result.Slug,
		&result.Description, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category.
func (s *CategoryStore) Update(tenantID uuid.UUID, c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE tenant_id = $4 AND id = $5
	`, c.Name, c.Slug, c.Description, tenantID, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Articles referencing it block the delete
// through the foreign key.
func (s *CategoryStore) Delete(tenantID, id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
