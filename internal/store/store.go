// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the database access layer. Every query is scoped to
// an explicit tenant ID passed by the caller; no store method ever queries
// across tenants.
package store

import (
	"database/sql"

	"github.com/google/uuid"

	"promptpress/internal/models"
)

// Store bundles the per-entity stores behind one constructor so handlers and
// the generation pipeline share a single wiring point.
type Store struct {
	Tenants    *TenantStore
	Articles   *ArticleStore
	Categories *CategoryStore
	Authors    *AuthorStore
	Prompts    *PromptStore
	Comments   *CommentStore
	Logs       *GenerationLogStore
}

// New creates a Store over the given database connection.
func New(db *sql.DB) *Store {
	return &Store{
		Tenants:    NewTenantStore(db),
		Articles:   NewArticleStore(db),
		Categories: NewCategoryStore(db),
		Authors:    NewAuthorStore(db),
		Prompts:    NewPromptStore(db),
		Comments:   NewCommentStore(db),
		Logs:       NewGenerationLogStore(db),
	}
}

// The methods below give Store the narrow persistence surface the generation
// pipeline depends on, delegating to the per-entity stores.

func (s *Store) FindCategory(tenantID, id uuid.UUID) (*models.Category, error) {
	return s.Categories.FindByID(tenantID, id)
}

func (s *Store) FindAuthor(tenantID, id uuid.UUID) (*models.Author, error) {
	return s.Authors.FindByID(tenantID, id)
}

func (s *Store) FindActivePrompt(tenantID, id uuid.UUID) (*models.PromptTemplate, error) {
	return s.Prompts.FindActive(tenantID, id)
}

func (s *Store) CreateArticle(tenantID uuid.UUID, a *models.Article) (*models.Article, error) {
	return s.Articles.Create(tenantID, a)
}

func (s *Store) CreateGenerationLog(tenantID uuid.UUID, l *models.GenerationLog) error {
	return s.Logs.Create(tenantID, l)
}
