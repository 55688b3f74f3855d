// Package router sets up all HTTP routes and middleware chains for the
// PromptPress API. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"promptpress/internal/handlers"
	"promptpress/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. Every route below /api and /admin is tenant
// scoped; generation gets its own tight rate limit because each request
// fans out into paid LLM calls.
func New(tenants middleware.TenantResolver, admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no tenant resolution.
	r.Get("/health", healthHandler)

	apiLimiter := middleware.NewRateLimiter(300, time.Minute)
	generateLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Public API.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.ResolveTenant(tenants))
		r.Use(apiLimiter.Middleware)

		r.Get("/articles", public.ListArticles)
		r.Get("/articles/{slug}", public.GetArticle)
		r.Get("/articles/{slug}/comments", public.ListComments)
		r.Post("/articles/{slug}/comments", public.CreateComment)
		r.Get("/categories", public.ListCategories)
	})

	// Admin API.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.ResolveTenant(tenants))
		r.Use(apiLimiter.Middleware)

		// Generation
		r.With(generateLimiter.Middleware).Post("/generate", admin.Generate)
		r.Get("/generation-logs", admin.ListGenerationLogs)

		// Articles
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", admin.ListArticles)
			r.Post("/", admin.CreateArticle)
			r.Get("/{id}", admin.GetArticle)
			r.Put("/{id}", admin.UpdateArticle)
			r.Delete("/{id}", admin.DeleteArticle)
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.ListCategories)
			r.Post("/", admin.CreateCategory)
			r.Put("/{id}", admin.UpdateCategory)
			r.Delete("/{id}", admin.DeleteCategory)
		})

		// Authors
		r.Route("/authors", func(r chi.Router) {
			r.Get("/", admin.ListAuthors)
			r.Post("/", admin.CreateAuthor)
		})

		// Prompt templates
		r.Route("/prompts", func(r chi.Router) {
			r.Get("/", admin.ListPrompts)
			r.Post("/", admin.CreatePrompt)
			r.Put("/{id}", admin.UpdatePrompt)
			r.Delete("/{id}", admin.DeletePrompt)
		})

		// Comment moderation
		r.Route("/comments", func(r chi.Router) {
			r.Get("/", admin.ListPendingComments)
			r.Post("/{id}/approve", admin.ApproveComment)
			r.Delete("/{id}", admin.DeleteComment)
		})

		// AI providers
		r.Get("/providers", admin.ProviderStatus)
		r.Post("/providers", admin.SetProvider)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
