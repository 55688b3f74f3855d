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

// CommentStore handles comment database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListApproved returns the approved comments on an article, oldest first.
func (s *CommentStore) ListApproved(tenantID, articleID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, article_id, author_name, author_email, body, approved, created_at
		FROM comments
		WHERE tenant_id = $1 AND article_id = $2 AND approved = TRUE
		ORDER BY created_at
	`, tenantID, articleID)
	if err != nil {
		return nil, fmt.Errorf("list approved comments: %w", err)
	}
	defer rows.Close()
	return collectComments(rows)
}

// ListPending returns every unapproved comment for a tenant, oldest first.
// Used by the admin moderation queue.
func (s *CommentStore) ListPending(tenantID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT id, tenant_id, article_id, author_name, author_email, body, approved, created_at
		FROM comments
		WHERE tenant_id = $1 AND approved = FALSE
		ORDER BY created_at
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list pending comments: %w", err)
	}
	defer rows.Close()
	return collectComments(rows)
}

func collectComments(rows *sql.Rows) ([]models.Comment, error) {
	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.ArticleID, &c.AuthorName, &c.AuthorEmail,
			&c.Body, &c.Approved, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create inserts a new comment, always unapproved, and returns it with the
// generated ID.
func (s *CommentStore) Create(tenantID uuid.UUID, c *models.Comment) (*models.Comment, error) {
	result := &models.Comment{}
	err := s.db.QueryRow(`
		INSERT INTO comments (tenant_id, article_id, author_name, author_email, body, approved)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, tenant_id, article_id, author_name, author_email, body, approved, created_at
	`, tenantID, c.ArticleID, c.AuthorName, c.AuthorEmail, c.Body).Scan(
		&result.ID, &result.TenantID, &result.ArticleID, &result.AuthorName,
		&result.AuthorEmail, &result.Body, &result.Approved, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return result, nil
}

// Approve marks a comment as publicly visible.
func (s *CommentStore) Approve(tenantID, id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE comments SET approved = TRUE WHERE tenant_id = $1 AND id = $2
	`, tenantID, id)
	if err != nil {
		return fmt.Errorf("approve comment: %w", err)
	}
	return nil
}

// Delete removes a comment by ID.
func (s *CommentStore) Delete(tenantID, id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM comments WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
