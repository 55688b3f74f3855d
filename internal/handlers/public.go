// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"promptpress/internal/cache"
	"promptpress/internal/middleware"
	"promptpress/internal/models"
	"promptpress/internal/store"
)

// Public serves the read-only blog API. List and detail responses are cached
// in Valkey per tenant; writes elsewhere invalidate the whole tenant's cache.
type Public struct {
	store *store.Store
	cache *cache.ResponseCache
}

// NewPublic creates the public API handler set.
func NewPublic(s *store.Store, c *cache.ResponseCache) *Public {
	return &Public{store: s, cache: c}
}

// articleListResponse is the paginated article list body.
type articleListResponse struct {
	Articles []models.Article `json:"articles"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PerPage  int              `json:"per_page"`
}

// ListArticles returns a page of published articles, filterable by category
// slug, tag, and free-text search.
func (p *Public) ListArticles(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	opts := store.ArticleListOptions{
		CategorySlug: q.Get("category"),
		Tag:          q.Get("tag"),
		Search:       strings.TrimSpace(q.Get("q")),
		Page:         page,
		PerPage:      perPage,
	}

	cacheKey := "articles:" + r.URL.RawQuery
	if body, ok := p.cache.Get(r.Context(), tenant.ID, cacheKey); ok {
		writeCached(w, body)
		return
	}

	articles, total, err := p.store.Articles.ListPublished(tenant.ID, opts)
	if err != nil {
		slog.Error("list articles failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list articles")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 || opts.PerPage > 100 {
		opts.PerPage = 20
	}

	p.respondCached(w, r, cacheKey, articleListResponse{
		Articles: articles,
		Total:    total,
		Page:     opts.Page,
		PerPage:  opts.PerPage,
	})
}

// GetArticle returns one published article by slug.
func (p *Public) GetArticle(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	cacheKey := "article:" + slug
	if body, ok := p.cache.Get(r.Context(), tenant.ID, cacheKey); ok {
		writeCached(w, body)
		return
	}

	article, err := p.store.Articles.FindPublishedBySlug(tenant.ID, slug)
	if err != nil {
		slog.Error("get article failed", "tenant", tenant.ID, "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load article")
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	p.respondCached(w, r, cacheKey, article)
}

// ListCategories returns the tenant's categories with published article counts.
func (p *Public) ListCategories(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	cacheKey := "categories"
	if body, ok := p.cache.Get(r.Context(), tenant.ID, cacheKey); ok {
		writeCached(w, body)
		return
	}

	categories, err := p.store.Categories.List(tenant.ID)
	if err != nil {
		slog.Error("list categories failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	p.respondCached(w, r, cacheKey, map[string]any{"categories": categories})
}

// ListComments returns the approved comments on a published article.
func (p *Public) ListComments(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	article, err := p.store.Articles.FindPublishedBySlug(tenant.ID, slug)
	if err != nil {
		slog.Error("load article for comments failed", "tenant", tenant.ID, "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load comments")
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	comments, err := p.store.Comments.ListApproved(tenant.ID, article.ID)
	if err != nil {
		slog.Error("list comments failed", "tenant", tenant.ID, "article", article.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load comments")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// commentRequest is the public comment submission body.
type commentRequest struct {
	AuthorName  string  `json:"author_name"`
	AuthorEmail *string `json:"author_email,omitempty"`
	Body        string  `json:"body"`
}

// CreateComment accepts a reader comment on a published article. Comments
// enter the moderation queue unapproved.
func (p *Public) CreateComment(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.AuthorName = strings.TrimSpace(req.AuthorName)
	req.Body = strings.TrimSpace(req.Body)
	if req.AuthorName == "" || req.Body == "" {
		writeError(w, http.StatusBadRequest, "author_name and body are required")
		return
	}

	article, err := p.store.Articles.FindPublishedBySlug(tenant.ID, slug)
	if err != nil {
		slog.Error("load article for comment failed", "tenant", tenant.ID, "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save comment")
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	created, err := p.store.Comments.Create(tenant.ID, &models.Comment{
		ArticleID:   article.ID,
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Body:        req.Body,
	})
	if err != nil {
		slog.Error("create comment failed", "tenant", tenant.ID, "article", article.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save comment")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// respondCached marshals data once, stores it in the response cache, and
// writes it to the client.
func (p *Public) respondCached(w http.ResponseWriter, r *http.Request, key string, data any) {
	tenant := middleware.TenantFromContext(r.Context())

	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("marshal response failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	p.cache.Set(r.Context(), tenant.ID, key, body)
	writeCached(w, body)
}

func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
