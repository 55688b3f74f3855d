// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"promptpress/internal/models"
)

const articleColumns = `id, tenant_id, title, slug, description, content, image_url,
	       category_id, author_id, published, ai_generated, ai_model, ai_prompt,
	       keywords, published_at, created_at, updated_at`

// ArticleListOptions filters and paginates public article listings.
// Zero values mean "no filter"; Page and PerPage are normalised by the store.
type ArticleListOptions struct {
	CategorySlug string
	Tag          string
	Search       string
	Page         int
	PerPage      int
}

// ArticleStore handles all article database operations.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// scanArticle reads one article row. Keywords are stored as a JSONB array.
func scanArticle(s interface{ Scan(dest ...any) error }) (*models.Article, error) {
	a := &models.Article{}
	var keywords []byte
	if err := s.Scan(
		&a.ID, &a.TenantID, &a.Title, &a.Slug, &a.Description, &a.Content,
		&a.ImageURL, &a.CategoryID, &a.AuthorID, &a.Published, &a.AIGenerated,
		&a.AIModel, &a.AIPrompt, &keywords, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &a.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
	}
	return a, nil
}

// ListPublished returns a page of published articles for a tenant, newest
// first, applying the optional category, tag, and search filters. It also
// returns the total match count for pagination.
func (s *ArticleStore) ListPublished(tenantID uuid.UUID, opts ArticleListOptions) ([]models.Article, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 || opts.PerPage > 100 {
		opts.PerPage = 20
	}

	where := []string{"a.tenant_id = $1", "a.published = TRUE"}
	args := []any{tenantID}

	if opts.CategorySlug != "" {
		args = append(args, opts.CategorySlug)
		where = append(where, fmt.Sprintf(
			"a.category_id = (SELECT id FROM categories WHERE tenant_id = $1 AND slug = $%d)", len(args)))
	}
	if opts.Tag != "" {
		args = append(args, opts.Tag)
		where = append(where, fmt.Sprintf("a.keywords @> to_jsonb(ARRAY[$%d]::text[])", len(args)))
	}
	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		where = append(where, fmt.Sprintf("(a.title ILIKE $%d OR a.description ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := s.db.QueryRow("SELECT COUNT(*) FROM articles a WHERE "+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count published articles: %w", err)
	}

	args = append(args, opts.PerPage, (opts.Page-1)*opts.PerPage)
	query := fmt.Sprintf(`
		SELECT %s
		FROM articles a
		WHERE %s
		ORDER BY a.published_at DESC NULLS LAST, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, cond, len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list published articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, total, rows.Err()
}

// List returns all articles for a tenant regardless of published state,
// newest first. Used by the admin API.
func (s *ArticleStore) List(tenantID uuid.UUID) ([]models.Article, error) {
	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE tenant_id = $1
		ORDER BY created_at DESC
	`, articleColumns), tenantID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	return articles, rows.Err()
}

// FindByID retrieves an article by its UUID. Returns nil if not found.
func (s *ArticleStore) FindByID(tenantID, id uuid.UUID) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM articles WHERE tenant_id = $1 AND id = $2
	`, articleColumns), tenantID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by id: %w", err)
	}
	return a, nil
}

// FindPublishedBySlug retrieves a published article by its slug. Used for
// public article pages.
func (s *ArticleStore) FindPublishedBySlug(tenantID uuid.UUID, slug string) (*models.Article, error) {
	a, err := scanArticle(s.db.QueryRow(fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE tenant_id = $1 AND slug = $2 AND published = TRUE
	`, articleColumns), tenantID, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// Create inserts a new article and returns it with the generated ID.
func (s *ArticleStore) Create(tenantID uuid.UUID, a *models.Article) (*models.Article, error) {
	// Publishing stamps published_at once.
	if a.Published && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	keywords, err := json.Marshal(a.Keywords)
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}

	result, err := scanArticle(s.db.QueryRow(fmt.Sprintf(`
		INSERT INTO articles (tenant_id, title, slug, description, content, image_url,
		                      category_id, author_id, published, ai_generated,
		                      ai_model, ai_prompt, keywords, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s
	`, articleColumns),
		tenantID, a.Title, a.Slug, a.Description, a.Content, a.ImageURL,
		a.CategoryID, a.AuthorID, a.Published, a.AIGenerated,
		a.AIModel, a.AIPrompt, keywords, a.PublishedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return result, nil
}

// Update modifies an existing article.
func (s *ArticleStore) Update(tenantID uuid.UUID, a *models.Article) error {
	if a.Published && a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}

	keywords, err := json.Marshal(a.Keywords)
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE articles SET
			title = $1, slug = $2, description = $3, content = $4, image_url = $5,
			category_id = $6, author_id = $7, published = $8, keywords = $9,
			published_at = $10, updated_at = NOW()
		WHERE tenant_id = $11 AND id = $12
	`, a.Title, a.Slug, a.Description, a.Content, a.ImageURL,
		a.CategoryID, a.AuthorID, a.Published, keywords, a.PublishedAt,
		tenantID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	return nil
}

// Delete removes an article by ID.
func (s *ArticleStore) Delete(tenantID, id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM articles WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}
