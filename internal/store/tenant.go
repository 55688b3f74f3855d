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

// TenantStore handles tenant lookup and registration.
type TenantStore struct {
	db *sql.DB
}

// NewTenantStore creates a new TenantStore with the given database connection.
func NewTenantStore(db *sql.DB) *TenantStore {
	return &TenantStore{db: db}
}

// FindByHostname retrieves the tenant serving the given hostname.
// Returns nil if not found.
func (s *TenantStore) FindByHostname(hostname string) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := s.db.QueryRow(`
		SELECT id, name, hostname, created_at
		FROM tenants WHERE hostname = $1
	`, hostname).Scan(&t.ID, &t.Name, &t.Hostname, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant by hostname: %w", err)
	}
	return t, nil
}

// FindByID retrieves a tenant by its UUID. Returns nil if not found.
func (s *TenantStore) FindByID(id uuid.UUID) (*models.Tenant, error) {
	t := &models.Tenant{}
	err := s.db.QueryRow(`
		SELECT id, name, hostname, created_at
		FROM tenants WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Hostname, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tenant by id: %w", err)
	}
	return t, nil
}

// List returns all tenants, ordered by creation date.
func (s *TenantStore) List() ([]models.Tenant, error) {
	rows, err := s.db.Query(`
		SELECT id, name, hostname, created_at
		FROM tenants ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Hostname, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Create inserts a new tenant and returns it with the generated ID.
func (s *TenantStore) Create(t *models.Tenant) (*models.Tenant, error) {
	result := &models.Tenant{}
	err := s.db.QueryRow(`
		INSERT INTO tenants (name, hostname)
		VALUES ($1, $2)
		RETURNING id, name, hostname, created_at
	`, t.Name, t.Hostname).Scan(&result.ID, &result.Name, &result.Hostname, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	return result, nil
}
