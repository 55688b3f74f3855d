// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. The tests live in an external test package so they can exercise the
// full router. Tests are skipped when PostgreSQL is unavailable. The response
// cache is nil (a valid no-op), so Valkey is not required.
package handlers_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"promptpress/internal/ai"
	"promptpress/internal/database"
	"promptpress/internal/generator"
	"promptpress/internal/handlers"
	"promptpress/internal/models"
	"promptpress/internal/photos"
	"promptpress/internal/router"
	"promptpress/internal/store"
)

// mockProvider implements ai.Provider for handler tests. Response and err
// are set per test before issuing requests.
type mockProvider struct {
	response ai.Completion
	err      error
}

func (m *mockProvider) Name() string { return "test" }
func (m *mockProvider) Complete(_ context.Context, _ string, _ int) (ai.Completion, error) {
	return m.response, m.err
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "promptpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "promptpress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Store      *store.Store
	Provider   *mockProvider
	Registry   *ai.Registry
	Router     http.Handler
	Tenant     *models.Tenant
	CategoryID uuid.UUID
	AuthorID   uuid.UUID
}

// newTestEnv creates a complete test environment: an isolated tenant with a
// category and an author, a mock AI provider, and the full router.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	st := store.New(db)

	tenant, err := st.Tenants.Create(&models.Tenant{
		Name:     "test-" + uuid.NewString()[:8],
		Hostname: uuid.NewString()[:8] + ".test.local",
	})
	if err != nil {
		t.Fatalf("create test tenant: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM tenants WHERE id = $1", tenant.ID)
	})

	category, err := st.Categories.Create(tenant.ID, &models.Category{
		Name: "Engineering",
		Slug: "engineering",
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	author, err := st.Authors.Create(tenant.ID, &models.Author{
		Name:  "Test Author",
		Email: "author@test.local",
	})
	if err != nil {
		t.Fatalf("create test author: %v", err)
	}

	provider := &mockProvider{
		response: ai.Completion{
			Text:       "<h1>Generated Title</h1><p>Generated intro.</p>",
			Model:      "test-model",
			TokensUsed: 100,
		},
	}
	registry := ai.NewRegistry("test", map[string]ai.ProviderConfig{})
	registry.Register("test", provider)

	gen := generator.New(st, registry, photos.New("", ""), 256)
	admin := handlers.NewAdmin(st, gen, registry, nil)
	public := handlers.NewPublic(st, nil)

	return &testEnv{
		DB:         db,
		Store:      st,
		Provider:   provider,
		Registry:   registry,
		Router:     router.New(st.Tenants, admin, public),
		Tenant:     tenant,
		CategoryID: category.ID,
		AuthorID:   author.ID,
	}
}

// do issues a request against the router, addressed to the test tenant.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-Tenant", e.Tenant.Hostname)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.Router.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a recorded JSON response body.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
