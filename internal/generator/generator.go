// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator implements the AI article generation pipeline: prompt
// template substitution, completion, content post-processing, image
// resolution, and persistence, sequenced per requested article count.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"promptpress/internal/ai"
	"promptpress/internal/models"
	"promptpress/internal/slug"
)

// Datastore is the tenant-scoped persistence capability the pipeline needs.
// Every method takes an explicit tenant ID; there is no default tenant.
type Datastore interface {
	FindCategory(tenantID, id uuid.UUID) (*models.Category, error)
	FindAuthor(tenantID, id uuid.UUID) (*models.Author, error)
	// FindActivePrompt returns nil for templates that exist but are
	// deactivated: an inactive prompt referenced by ID is treated the same
	// as a missing one.
	FindActivePrompt(tenantID, id uuid.UUID) (*models.PromptTemplate, error)
	CreateArticle(tenantID uuid.UUID, a *models.Article) (*models.Article, error)
	CreateGenerationLog(tenantID uuid.UUID, l *models.GenerationLog) error
}

// Completer produces text completions. *ai.Registry satisfies this.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (ai.Completion, error)
}

// PhotoSearcher maps a free-text description to an image URL. It never
// fails; implementations fall back to a default image. *photos.Client
// satisfies this.
type PhotoSearcher interface {
	SearchOne(ctx context.Context, query string) string
}

// Request describes one generation call. Count defaults to 1.
type Request struct {
	Topic      string     `json:"topic"`
	Count      int        `json:"count"`
	PromptID   *uuid.UUID `json:"prompt_id,omitempty"`
	CategoryID uuid.UUID  `json:"category_id"`
	AuthorID   uuid.UUID  `json:"author_id"`
}

// Generator orchestrates the article generation pipeline.
type Generator struct {
	store     Datastore
	completer Completer
	photos    PhotoSearcher
	maxTokens int
}

// New creates a Generator. maxTokens is the per-completion token budget.
func New(store Datastore, completer Completer, photos PhotoSearcher, maxTokens int) *Generator {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Generator{
		store:     store,
		completer: completer,
		photos:    photos,
		maxTokens: maxTokens,
	}
}

// Generate runs the pipeline: validate the request, resolve reference
// entities, then produce Count articles sequentially. A failing unit aborts
// the remaining ones, but articles persisted by earlier units stay — there
// is no cross-iteration rollback. The returned slice holds every article
// created before the failure.
func (g *Generator) Generate(ctx context.Context, tenantID uuid.UUID, req Request) ([]models.Article, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}

	category, err := g.store.FindCategory(tenantID, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	if category == nil {
		return nil, &NotFoundError{Resource: "category"}
	}

	author, err := g.store.FindAuthor(tenantID, req.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	if author == nil {
		return nil, &NotFoundError{Resource: "author"}
	}

	promptTemplate := defaultPromptTemplate
	if req.PromptID != nil {
		tpl, err := g.store.FindActivePrompt(tenantID, *req.PromptID)
		if err != nil {
			return nil, fmt.Errorf("resolve prompt template: %w", err)
		}
		if tpl == nil {
			return nil, &NotFoundError{Resource: "prompt template"}
		}
		promptTemplate = tpl.Content
	}

	created := make([]models.Article, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		article, err := g.generateOne(ctx, tenantID, &req, category, promptTemplate)
		if err != nil {
			slog.Error("article generation unit failed",
				"tenant", tenantID,
				"topic", req.Topic,
				"unit", i+1,
				"of", req.Count,
				"error", err,
			)
			return created, err
		}
		created = append(created, *article)
	}

	return created, nil
}

// generateOne runs a single unit of the pipeline and persists the result.
func (g *Generator) generateOne(ctx context.Context, tenantID uuid.UUID, req *Request, category *models.Category, promptTemplate string) (*models.Article, error) {
	start := time.Now()
	prompt := Substitute(promptTemplate, req.Topic)

	completion, err := g.completer.Complete(ctx, prompt, g.maxTokens)
	if err != nil {
		g.logUnit(tenantID, req.PromptID, nil, false, completion.TokensUsed, start)
		return nil, err
	}

	processed := Process(completion.Text, req.Topic)

	// Resolve all image placeholders before anything is persisted. Lookups
	// for distinct descriptions are independent and run concurrently.
	urls := g.resolveImages(ctx, processed.Images)
	content := ReplaceImages(processed.Content, processed.Images, urls)
	content = Sanitize(content)

	imageURL := g.photos.SearchOne(ctx, req.Topic)

	article := &models.Article{
		Title:       processed.Title,
		Slug:        slug.Unique(processed.Title),
		Description: processed.Description,
		Content:     content,
		ImageURL:    imageURL,
		CategoryID:  req.CategoryID,
		AuthorID:    req.AuthorID,
		Published:   true,
		AIGenerated: true,
		AIModel:     completion.Model,
		AIPrompt:    prompt,
		Keywords:    keywords(req.Topic, category.Name),
	}

	saved, err := g.store.CreateArticle(tenantID, article)
	if err != nil {
		g.logUnit(tenantID, req.PromptID, nil, false, completion.TokensUsed, start)
		return nil, fmt.Errorf("persist article: %w", err)
	}

	g.logUnit(tenantID, req.PromptID, &saved.ID, true, completion.TokensUsed, start)
	return saved, nil
}

// resolveImages maps each distinct placeholder description to an image URL.
func (g *Generator) resolveImages(ctx context.Context, images []ImagePlaceholder) map[string]string {
	if len(images) == 0 {
		return nil
	}

	var mu sync.Mutex
	urls := make(map[string]string, len(images))

	eg, ctx := errgroup.WithContext(ctx)
	for _, img := range images {
		eg.Go(func() error {
			url := g.photos.SearchOne(ctx, img.Description)
			mu.Lock()
			urls[img.Description] = url
			mu.Unlock()
			return nil
		})
	}
	// SearchOne never fails, so Wait only synchronises.
	_ = eg.Wait()

	return urls
}

// logUnit writes a best-effort generation log entry. Log failures are
// recorded at Warn level and never propagate.
func (g *Generator) logUnit(tenantID uuid.UUID, promptID, articleID *uuid.UUID, success bool, tokens int, start time.Time) {
	entry := &models.GenerationLog{
		PromptID:  promptID,
		ArticleID: articleID,
		Success:   success,
	}
	if tokens > 0 {
		entry.TokensUsed = &tokens
	}
	duration := float64(time.Since(start).Microseconds()) / 1000.0
	entry.DurationMS = &duration

	if err := g.store.CreateGenerationLog(tenantID, entry); err != nil {
		slog.Warn("generation log write failed", "tenant", tenantID, "error", err)
	}
}

// keywords derives the stored keyword list for a generated article.
func keywords(topic, categoryName string) []string {
	topic = strings.TrimSpace(topic)
	kws := []string{topic}
	if categoryName != "" && !strings.EqualFold(categoryName, topic) {
		kws = append(kws, categoryName)
	}
	return kws
}

// validate checks the request in place, applying the Count default.
func validate(req *Request) error {
	req.Topic = strings.TrimSpace(req.Topic)
	if req.Topic == "" {
		return &ValidationError{Msg: "topic is required"}
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if req.Count < 1 {
		return &ValidationError{Msg: "count must be at least 1"}
	}
	if req.CategoryID == uuid.Nil {
		return &ValidationError{Msg: "category_id is required"}
	}
	if req.AuthorID == uuid.Nil {
		return &ValidationError{Msg: "author_id is required"}
	}
	return nil
}
