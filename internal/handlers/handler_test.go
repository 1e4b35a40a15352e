// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
// The page cache is left nil so every request hits the database.
package handlers

import (
	"database/sql"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/blog"
	"inkwell/internal/database"
	"inkwell/internal/render"
	"inkwell/internal/store"
)

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
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
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

// testRouter builds the full route tree backed by the test database.
func testRouter(t *testing.T, db *sql.DB) chi.Router {
	t.Helper()

	svc := blog.NewService(
		store.NewBlogStore(db),
		store.NewCategoryStore(db),
		store.NewTagStore(db),
	)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	r := chi.NewRouter()
	api := NewAPI(svc)
	public := NewPublic(svc, renderer, nil)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", api.ListPosts)
		r.Post("/", api.CreatePost)
		r.Get("/{slug}", api.GetPost)
	})
	r.Get("/categories", api.ListCategories)
	r.Get("/tags", api.ListTags)
	r.Get("/", public.Homepage)
	r.Route("/blog", func(r chi.Router) {
		r.Get("/new", public.NewPostForm)
		r.Post("/new", public.NewPostSubmit)
		r.Get("/{slug}", public.PostPage)
	})

	return r
}

// cleanPost removes a post and its registry rows by slug/names.
func cleanPost(t *testing.T, db *sql.DB, slug string, categories []string, tags []string) {
	t.Helper()
	t.Cleanup(func() {
		db.Exec("DELETE FROM blogs WHERE slug = $1", slug)
		for _, c := range categories {
			db.Exec("DELETE FROM categories WHERE name = $1", c)
		}
		for _, tag := range tags {
			db.Exec("DELETE FROM tags WHERE name = $1", tag)
		}
	})
}

// mustStatus fails the test when the recorded status differs.
func mustStatus(t *testing.T, got, want int, body string) {
	t.Helper()
	if got != want {
		t.Fatalf("status: got %d, want %d (body: %s)", got, want, body)
	}
}
