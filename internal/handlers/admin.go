// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"promptpress/internal/ai"
	"promptpress/internal/cache"
	"promptpress/internal/generator"
	"promptpress/internal/markdown"
	"promptpress/internal/middleware"
	"promptpress/internal/models"
	"promptpress/internal/slug"
	"promptpress/internal/store"
)

// Admin serves the management API: article generation, content CRUD,
// comment moderation, and provider switching.
type Admin struct {
	store     *store.Store
	generator *generator.Generator
	registry  *ai.Registry
	cache     *cache.ResponseCache
}

// NewAdmin creates the admin API handler set.
func NewAdmin(s *store.Store, g *generator.Generator, registry *ai.Registry, c *cache.ResponseCache) *Admin {
	return &Admin{store: s, generator: g, registry: registry, cache: c}
}

// invalidate clears the tenant's cached public responses after a write.
func (a *Admin) invalidate(r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	a.cache.InvalidateTenant(r.Context(), tenant.ID)
}

// --- Articles ---

// articleRequest is the admin article create/update body. The body is
// Markdown and gets rendered to HTML at save time.
type articleRequest struct {
	Title        string   `json:"title"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description"`
	BodyMarkdown string   `json:"body_markdown"`
	ImageURL     string   `json:"image_url"`
	CategoryID   string   `json:"category_id"`
	AuthorID     string   `json:"author_id"`
	Published    bool     `json:"published"`
	Keywords     []string `json:"keywords"`
}

// ListArticles returns every article for the tenant, drafts included.
func (a *Admin) ListArticles(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	articles, err := a.store.Articles.List(tenant.ID)
	if err != nil {
		slog.Error("admin list articles failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list articles")
		return
	}
	if articles == nil {
		articles = []models.Article{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"articles": articles})
}

// GetArticle returns one article by ID, drafts included.
func (a *Admin) GetArticle(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	article, err := a.store.Articles.FindByID(tenant.ID, id)
	if err != nil {
		slog.Error("admin get article failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load article")
		return
	}
	if article == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// CreateArticle creates a manually authored article from Markdown.
func (a *Admin) CreateArticle(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	article, status, msg := a.articleFromRequest(r)
	if article == nil {
		writeError(w, status, msg)
		return
	}

	created, err := a.store.Articles.Create(tenant.ID, article)
	if err != nil {
		slog.Error("admin create article failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create article")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateArticle replaces an article's editable fields.
func (a *Admin) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := a.store.Articles.FindByID(tenant.ID, id)
	if err != nil {
		slog.Error("admin load article failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load article")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	updated, status, msg := a.articleFromRequest(r)
	if updated == nil {
		writeError(w, status, msg)
		return
	}
	updated.ID = existing.ID
	updated.PublishedAt = existing.PublishedAt
	if !updated.Published {
		updated.PublishedAt = nil
	}
	// Preserve provenance fields; manual edits never rewrite them.
	updated.AIGenerated = existing.AIGenerated
	updated.AIModel = existing.AIModel
	updated.AIPrompt = existing.AIPrompt

	if err := a.store.Articles.Update(tenant.ID, updated); err != nil {
		slog.Error("admin update article failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update article")
		return
	}

	a.invalidate(r)
	article, err := a.store.Articles.FindByID(tenant.ID, id)
	if err != nil || article == nil {
		writeJSON(w, http.StatusOK, updated)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// DeleteArticle removes an article.
func (a *Admin) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.store.Articles.Delete(tenant.ID, id); err != nil {
		slog.Error("admin delete article failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete article")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// articleFromRequest validates an articleRequest and builds the model,
// rendering the Markdown body. Returns nil with an HTTP status and message
// on failure.
func (a *Admin) articleFromRequest(r *http.Request) (*models.Article, int, string) {
	var req articleRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, http.StatusBadRequest, err.Error()
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, http.StatusBadRequest, "title is required"
	}
	categoryID, err := parseUUID(req.CategoryID, "category_id")
	if err != nil {
		return nil, http.StatusBadRequest, err.Error()
	}
	authorID, err := parseUUID(req.AuthorID, "author_id")
	if err != nil {
		return nil, http.StatusBadRequest, err.Error()
	}

	tenant := middleware.TenantFromContext(r.Context())
	if category, err := a.store.Categories.FindByID(tenant.ID, categoryID); err != nil {
		return nil, http.StatusInternalServerError, "failed to resolve category"
	} else if category == nil {
		return nil, http.StatusNotFound, "category not found"
	}
	if author, err := a.store.Authors.FindByID(tenant.ID, authorID); err != nil {
		return nil, http.StatusInternalServerError, "failed to resolve author"
	} else if author == nil {
		return nil, http.StatusNotFound, "author not found"
	}

	content, err := markdown.ToHTML(req.BodyMarkdown)
	if err != nil {
		return nil, http.StatusBadRequest, "invalid markdown body"
	}

	articleSlug := req.Slug
	if articleSlug == "" {
		articleSlug = slug.Generate(req.Title)
	}

	return &models.Article{
		Title:       req.Title,
		Slug:        articleSlug,
		Description: req.Description,
		Content:     content,
		ImageURL:    req.ImageURL,
		CategoryID:  categoryID,
		AuthorID:    authorID,
		Published:   req.Published,
		Keywords:    req.Keywords,
	}, 0, ""
}

// --- Categories ---

type categoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ListCategories returns the tenant's categories.
func (a *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	categories, err := a.store.Categories.List(tenant.ID)
	if err != nil {
		slog.Error("admin list categories failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// CreateCategory creates a category, deriving the slug from the name when
// not given.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	created, err := a.store.Categories.Create(tenant.ID, &models.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("admin create category failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateCategory modifies a category.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := a.store.Categories.FindByID(tenant.ID, id)
	if err != nil {
		slog.Error("admin load category failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if req.Slug != "" {
		existing.Slug = req.Slug
	}
	if req.Description != nil {
		existing.Description = req.Description
	}

	if err := a.store.Categories.Update(tenant.ID, existing); err != nil {
		slog.Error("admin update category failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	a.invalidate(r)
	writeJSON(w, http.StatusOK, existing)
}

// DeleteCategory removes a category. Categories still referenced by
// articles cannot be deleted.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.store.Categories.Delete(tenant.ID, id); err != nil {
		writeError(w, http.StatusConflict, "category is in use or cannot be deleted")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// --- Authors ---

type authorRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Bio   *string `json:"bio,omitempty"`
}

// ListAuthors returns the tenant's authors.
func (a *Admin) ListAuthors(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	authors, err := a.store.Authors.List(tenant.ID)
	if err != nil {
		slog.Error("admin list authors failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list authors")
		return
	}
	if authors == nil {
		authors = []models.Author{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"authors": authors})
}

// CreateAuthor registers a new author.
func (a *Admin) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req authorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	created, err := a.store.Authors.Create(tenant.ID, &models.Author{
		Name:  req.Name,
		Email: req.Email,
		Bio:   req.Bio,
	})
	if err != nil {
		slog.Error("admin create author failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create author")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// --- Prompt templates ---

type promptRequest struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ListPrompts returns all prompt templates, active and inactive.
func (a *Admin) ListPrompts(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	prompts, err := a.store.Prompts.List(tenant.ID)
	if err != nil {
		slog.Error("admin list prompts failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list prompt templates")
		return
	}
	if prompts == nil {
		prompts = []models.PromptTemplate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"prompts": prompts})
}

// CreatePrompt stores a new prompt template. The content must contain the
// topic placeholder so every generation can substitute its topic.
func (a *Admin) CreatePrompt(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "name and content are required")
		return
	}
	if !strings.Contains(req.Content, models.TopicPlaceholder) {
		writeError(w, http.StatusBadRequest, "content must contain the {topic} placeholder")
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	created, err := a.store.Prompts.Create(tenant.ID, &models.PromptTemplate{
		Name:     req.Name,
		Content:  req.Content,
		IsActive: active,
	})
	if err != nil {
		slog.Error("admin create prompt failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create prompt template")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdatePrompt modifies a prompt template, including activation state.
func (a *Admin) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := a.store.Prompts.FindByID(tenant.ID, id)
	if err != nil {
		slog.Error("admin load prompt failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load prompt template")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "prompt template not found")
		return
	}

	var req promptRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		existing.Name = name
	}
	if strings.TrimSpace(req.Content) != "" {
		if !strings.Contains(req.Content, models.TopicPlaceholder) {
			writeError(w, http.StatusBadRequest, "content must contain the {topic} placeholder")
			return
		}
		existing.Content = req.Content
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := a.store.Prompts.Update(tenant.ID, existing); err != nil {
		slog.Error("admin update prompt failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update prompt template")
		return
	}

	writeJSON(w, http.StatusOK, existing)
}

// DeletePrompt removes a prompt template.
func (a *Admin) DeletePrompt(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.store.Prompts.Delete(tenant.ID, id); err != nil {
		slog.Error("admin delete prompt failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete prompt template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Comments (moderation) ---

// ListPendingComments returns the moderation queue.
func (a *Admin) ListPendingComments(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())

	comments, err := a.store.Comments.ListPending(tenant.ID)
	if err != nil {
		slog.Error("admin list pending comments failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list comments")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// ApproveComment marks a comment as publicly visible.
func (a *Admin) ApproveComment(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.store.Comments.Approve(tenant.ID, id); err != nil {
		slog.Error("admin approve comment failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to approve comment")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteComment removes a comment.
func (a *Admin) DeleteComment(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	id, err := uuidParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.store.Comments.Delete(tenant.ID, id); err != nil {
		slog.Error("admin delete comment failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	a.invalidate(r)
	w.WriteHeader(http.StatusNoContent)
}

// --- Generation logs ---

// ListGenerationLogs returns the most recent generation audit entries.
func (a *Admin) ListGenerationLogs(w http.ResponseWriter, r *http.Request) {
	tenant := middleware.TenantFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := a.store.Logs.List(tenant.ID, limit)
	if err != nil {
		slog.Error("admin list generation logs failed", "tenant", tenant.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list generation logs")
		return
	}
	if logs == nil {
		logs = []models.GenerationLog{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

// --- AI providers ---

// ProviderStatus reports the active provider and all configured ones.
func (a *Admin) ProviderStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    a.registry.ActiveName(),
		"available": a.registry.Available(),
	})
}

// SetProvider switches the active completion provider at runtime.
func (a *Admin) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.registry.SetActive(req.Provider); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("ai provider switched", "provider", req.Provider)
	a.ProviderStatus(w, r)
}
