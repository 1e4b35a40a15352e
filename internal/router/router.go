// Package router sets up all HTTP routes and middleware chains for the
// Inkwell server. The JSON API and the public HTML pages share one Chi
// router; post creation is rate limited on both surfaces.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
)

// createLimit caps post creation per client IP.
const (
	createLimit  = 10
	createWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	limiter := middleware.NewRateLimiter(createLimit, createWindow)

	// JSON API.
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", api.ListPosts)
		r.With(limiter.Middleware).Post("/", api.CreatePost)
		r.Get("/{slug}", api.GetPost)
	})
	r.Get("/categories", api.ListCategories)
	r.Get("/tags", api.ListTags)

	// Public HTML pages.
	r.Get("/", public.Homepage)
	r.Route("/blog", func(r chi.Router) {
		r.Get("/new", public.NewPostForm)
		r.With(limiter.Middleware).Post("/new", public.NewPostSubmit)
		r.Get("/{slug}", public.PostPage)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
