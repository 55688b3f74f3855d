package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: one tenant on
// localhost with a default author, a starter category, and an active prompt
// template so generation works out of the box.
func Seed(db *sql.DB) error {
	// Check if any tenants exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM tenants").Scan(&count); err != nil {
		return fmt.Errorf("seed check tenants: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var tenantID string
	err := db.QueryRow(`
		INSERT INTO tenants (name, hostname)
		VALUES ('Development Blog', 'localhost')
		RETURNING id
	`).Scan(&tenantID)
	if err != nil {
		return fmt.Errorf("seed insert tenant: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO authors (tenant_id, name, email, bio)
		VALUES ($1, 'Editorial Team', 'editorial@localhost', 'In-house editorial team.')
	`, tenantID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO categories (tenant_id, name, slug, description)
		VALUES ($1, 'General', 'general', 'Uncategorised articles.')
	`, tenantID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO prompt_templates (tenant_id, name, content, is_active)
		VALUES ($1, 'listicle',
		        'Write a listicle-style HTML article about {topic}. Use one <h1> for the title, an opening <p>, and numbered <h2> sections. Where an illustration would help, insert a directive like [IMAGE: "short description of the image"] on its own line.',
		        TRUE)
	`, tenantID)
	if err != nil {
		return fmt.Errorf("seed insert prompt template: %w", err)
	}

	slog.Info("database seeded with development tenant", "hostname", "localhost")
	return nil
}
