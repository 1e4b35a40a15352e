// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP boundary of the application: the
// JSON REST API and the public HTML pages. Handlers translate requests
// into blog service calls and map service outcomes to status codes;
// internal failure detail is logged here and never sent to the client.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"inkwell/internal/blog"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// API groups the JSON REST handlers.
type API struct {
	svc *blog.Service
}

// NewAPI creates a new API handler group.
func NewAPI(svc *blog.Service) *API {
	return &API{svc: svc}
}

// postRequest is the request payload for creating a post. The slug
// field is required for wire compatibility with existing clients but
// its value is ignored — the server always derives the slug from the
// title.
type postRequest struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// Bind validates the decoded payload before any store access.
func (p *postRequest) Bind(r *http.Request) error {
	if msg := validatePost(p.Title, p.Slug, p.Content, p.Excerpt, p.Category, p.Tags); msg != "" {
		return errors.New(msg)
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}

// ListPosts returns every post, newest first.
//
// GET /posts
func (a *API) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.svc.List(r.Context())
	if err != nil {
		slog.Error("list posts failed", "error", err)
		render.Render(w, r, errInternal())
		return
	}
	if posts == nil {
		posts = []models.Blog{}
	}
	render.JSON(w, r, posts)
}

// GetPost returns a single post with prev/next navigation and related
// posts.
//
// GET /posts/{slug}
func (a *API) GetPost(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	composed, err := a.svc.GetWithRelations(r.Context(), slugParam)
	if err != nil {
		slog.Error("get post failed", "error", err, "slug", slugParam)
		render.Render(w, r, errInternal())
		return
	}
	if composed == nil {
		render.Render(w, r, errNotFound("Blog post not found"))
		return
	}
	render.JSON(w, r, composed)
}

// CreatePost validates the payload and stores a new post. Responds 201
// with the stored post, 409 when the derived slug collides with an
// existing post.
//
// POST /posts
func (a *API) CreatePost(w http.ResponseWriter, r *http.Request) {
	data := &postRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, errInvalidRequest(err))
		return
	}

	created, err := a.svc.Create(r.Context(), blog.CreateInput{
		Title:    data.Title,
		Content:  data.Content,
		Excerpt:  data.Excerpt,
		Category: data.Category,
		Tags:     data.Tags,
	})
	switch {
	case errors.Is(err, store.ErrDuplicateSlug):
		render.Render(w, r, errConflict(err))
		return
	case errors.Is(err, blog.ErrInvalidTitle):
		render.Render(w, r, errInvalidRequest(err))
		return
	case err != nil:
		slog.Error("create post failed", "error", err)
		render.Render(w, r, errInternal())
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

// ListCategories returns all category names in lexicographic order.
//
// GET /categories
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	names, err := a.svc.Categories(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		render.Render(w, r, errInternal())
		return
	}
	render.JSON(w, r, names)
}

// ListTags returns all tag names in lexicographic order.
//
// GET /tags
func (a *API) ListTags(w http.ResponseWriter, r *http.Request) {
	names, err := a.svc.Tags(r.Context())
	if err != nil {
		slog.Error("list tags failed", "error", err)
		render.Render(w, r, errInternal())
		return
	}
	render.JSON(w, r, names)
}
