// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"promptpress/internal/models"
)

// createArticle creates a published article through the admin API.
func createArticle(t *testing.T, env *testEnv, title string, keywords []string) models.Article {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/admin/api/articles", map[string]any{
		"title":         title,
		"description":   "About " + title,
		"body_markdown": "## Section\n\nSome **bold** prose.",
		"category_id":   env.CategoryID.String(),
		"author_id":     env.AuthorID.String(),
		"published":     true,
		"keywords":      keywords,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create article: got %d, body %s", rec.Code, rec.Body.String())
	}
	var article models.Article
	decodeBody(t, rec, &article)
	return article
}

func TestAdminCreateArticleRendersMarkdown(t *testing.T) {
	env := newTestEnv(t)

	article := createArticle(t, env, "Markdown Handling", nil)
	if !strings.Contains(article.Content, "<h2") {
		t.Errorf("markdown heading not rendered: %q", article.Content)
	}
	if !strings.Contains(article.Content, "<strong>bold</strong>") {
		t.Errorf("markdown bold not rendered: %q", article.Content)
	}
	if article.AIGenerated {
		t.Error("manual article must not be flagged ai_generated")
	}
}

func TestPublicArticleListAndDetail(t *testing.T) {
	env := newTestEnv(t)

	a := createArticle(t, env, "Kubernetes Networking", []string{"kubernetes"})
	createArticle(t, env, "Postgres Tuning", []string{"postgres"})

	rec := env.do(t, http.MethodGet, "/api/articles", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var list struct {
		Articles []models.Article `json:"articles"`
		Total    int              `json:"total"`
	}
	decodeBody(t, rec, &list)
	if list.Total != 2 {
		t.Errorf("total: got %d, want 2", list.Total)
	}

	rec = env.do(t, http.MethodGet, "/api/articles?tag=kubernetes", nil)
	decodeBody(t, rec, &list)
	if list.Total != 1 || list.Articles[0].Title != "Kubernetes Networking" {
		t.Errorf("tag filter: got %+v", list)
	}

	rec = env.do(t, http.MethodGet, "/api/articles?q=tuning", nil)
	decodeBody(t, rec, &list)
	if list.Total != 1 || list.Articles[0].Title != "Postgres Tuning" {
		t.Errorf("search filter: got %+v", list)
	}

	rec = env.do(t, http.MethodGet, "/api/articles/"+a.Slug, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: got %d", rec.Code)
	}
	var detail models.Article
	decodeBody(t, rec, &detail)
	if detail.ID != a.ID {
		t.Errorf("detail id mismatch")
	}

	rec = env.do(t, http.MethodGet, "/api/articles/no-such-slug", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown slug: got %d, want 404", rec.Code)
	}
}

func TestPublicHidesDrafts(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/admin/api/articles", map[string]any{
		"title":         "Draft Piece",
		"body_markdown": "wip",
		"category_id":   env.CategoryID.String(),
		"author_id":     env.AuthorID.String(),
		"published":     false,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft: got %d", rec.Code)
	}
	var draft models.Article
	decodeBody(t, rec, &draft)

	list := env.do(t, http.MethodGet, "/api/articles", nil)
	var listResp struct {
		Total int `json:"total"`
	}
	decodeBody(t, list, &listResp)
	if listResp.Total != 0 {
		t.Errorf("drafts leaked into public list: total %d", listResp.Total)
	}

	detail := env.do(t, http.MethodGet, "/api/articles/"+draft.Slug, nil)
	if detail.Code != http.StatusNotFound {
		t.Errorf("draft detail: got %d, want 404", detail.Code)
	}

	// Admin still sees it.
	adminList := env.do(t, http.MethodGet, "/admin/api/articles", nil)
	var adminResp struct {
		Articles []models.Article `json:"articles"`
	}
	decodeBody(t, adminList, &adminResp)
	if len(adminResp.Articles) != 1 {
		t.Errorf("admin list: got %d articles, want 1", len(adminResp.Articles))
	}
}

func TestCommentModerationFlow(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Commented Article", nil)

	rec := env.do(t, http.MethodPost, "/api/articles/"+article.Slug+"/comments", map[string]any{
		"author_name": "Reader",
		"body":        "Great read.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comment: got %d, body %s", rec.Code, rec.Body.String())
	}
	var comment models.Comment
	decodeBody(t, rec, &comment)
	if comment.Approved {
		t.Error("new comments must start unapproved")
	}

	// Not public yet.
	pub := env.do(t, http.MethodGet, "/api/articles/"+article.Slug+"/comments", nil)
	var pubResp struct {
		Comments []models.Comment `json:"comments"`
	}
	decodeBody(t, pub, &pubResp)
	if len(pubResp.Comments) != 0 {
		t.Error("unapproved comment visible publicly")
	}

	// Approve and re-check.
	approve := env.do(t, http.MethodPost, "/admin/api/comments/"+comment.ID.String()+"/approve", nil)
	if approve.Code != http.StatusNoContent {
		t.Fatalf("approve: got %d", approve.Code)
	}
	pub = env.do(t, http.MethodGet, "/api/articles/"+article.Slug+"/comments", nil)
	decodeBody(t, pub, &pubResp)
	if len(pubResp.Comments) != 1 {
		t.Errorf("approved comments: got %d, want 1", len(pubResp.Comments))
	}
}

func TestCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	article := createArticle(t, env, "Strict Article", nil)

	rec := env.do(t, http.MethodPost, "/api/articles/"+article.Slug+"/comments", map[string]any{
		"author_name": "",
		"body":        "   ",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/articles/missing-slug/comments", map[string]any{
		"author_name": "Reader",
		"body":        "Hello",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestCategoriesEndpoint(t *testing.T) {
	env := newTestEnv(t)
	createArticle(t, env, "Categorised", nil)

	rec := env.do(t, http.MethodGet, "/api/categories", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp struct {
		Categories []models.Category `json:"categories"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Categories) != 1 {
		t.Fatalf("categories: got %d, want 1", len(resp.Categories))
	}
	if resp.Categories[0].ArticleCount != 1 {
		t.Errorf("article count: got %d, want 1", resp.Categories[0].ArticleCount)
	}
}

func TestPromptValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/admin/api/prompts", map[string]any{
		"name":    "broken",
		"content": "A prompt with no placeholder.",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400 for missing placeholder", rec.Code)
	}
}
