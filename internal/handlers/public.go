// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/blog"
	"inkwell/internal/cache"
	"inkwell/internal/markdown"
	"inkwell/internal/render"
	"inkwell/internal/store"
)

// Public groups handlers for the public HTML pages: the post listing,
// single post pages, and the create form. Rendered pages are served
// through the Valkey page cache; pageCache may be nil, in which case
// every request renders fresh.
type Public struct {
	svc       *blog.Service
	renderer  *render.Renderer
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(svc *blog.Service, renderer *render.Renderer, pageCache *cache.PageCache) *Public {
	return &Public{svc: svc, renderer: renderer, pageCache: pageCache}
}

// Homepage renders the post listing, newest first.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.HomepageKey()); ok {
		writeHTML(w, cached)
		return
	}

	posts, err := p.svc.List(ctx)
	if err != nil {
		slog.Error("homepage list posts failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page, err := p.renderer.Render("home", render.PageData{
		Title: "Latest Posts",
		Data:  map[string]any{"blogs": posts},
	})
	if err != nil {
		slog.Error("homepage render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.HomepageKey(), page)
	writeHTML(w, page)
}

// PostPage renders a single post with prev/next links and related posts.
func (p *Public) PostPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if cached, ok := p.pageCache.Get(ctx, cache.SlugKey(slugParam)); ok {
		writeHTML(w, cached)
		return
	}

	composed, err := p.svc.GetWithRelations(ctx, slugParam)
	if err != nil {
		slog.Error("post page failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if composed == nil {
		http.NotFound(w, r)
		return
	}

	body, err := markdown.ToHTML(composed.Blog.Content)
	if err != nil {
		slog.Error("post content render failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page, err := p.renderer.Render("post", render.PageData{
		Title: composed.Blog.Title,
		Data: map[string]any{
			"blog":    composed.Blog,
			"prev":    composed.Prev,
			"next":    composed.Next,
			"related": composed.Related,
			"body":    template.HTML(body),
		},
	})
	if err != nil {
		slog.Error("post page render failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Set(ctx, cache.SlugKey(slugParam), page)
	writeHTML(w, page)
}

// NewPostForm renders the create-post form.
func (p *Public) NewPostForm(w http.ResponseWriter, r *http.Request) {
	p.renderForm(w, formValues{}, "", http.StatusOK)
}

// NewPostSubmit handles the create-form submission. Tags arrive as a
// comma-separated string and are split, trimmed, and filtered here.
// On success the browser is redirected to the new post's page.
func (p *Public) NewPostSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	values := formValues{
		Title:    strings.TrimSpace(r.PostFormValue("title")),
		Excerpt:  strings.TrimSpace(r.PostFormValue("excerpt")),
		Category: strings.TrimSpace(r.PostFormValue("category")),
		Tags:     r.PostFormValue("tags"),
		Content:  r.PostFormValue("content"),
	}

	if values.Title == "" || values.Excerpt == "" || values.Category == "" || strings.TrimSpace(values.Content) == "" {
		p.renderForm(w, values, "Title, excerpt, category, and content are all required.", http.StatusBadRequest)
		return
	}

	created, err := p.svc.Create(r.Context(), blog.CreateInput{
		Title:    values.Title,
		Content:  values.Content,
		Excerpt:  values.Excerpt,
		Category: values.Category,
		Tags:     splitTags(values.Tags),
	})
	switch {
	case errors.Is(err, store.ErrDuplicateSlug):
		p.renderForm(w, values, "A post with this title already exists.", http.StatusConflict)
		return
	case errors.Is(err, blog.ErrInvalidTitle):
		p.renderForm(w, values, "The title must contain at least one letter or digit.", http.StatusBadRequest)
		return
	case err != nil:
		slog.Error("create post from form failed", "error", err)
		p.renderForm(w, values, "Something went wrong. Please try again.", http.StatusInternalServerError)
		return
	}

	// The new post changes the homepage and neighbouring post pages.
	p.pageCache.InvalidateAll(r.Context())

	http.Redirect(w, r, "/blog/"+created.Slug, http.StatusSeeOther)
}

// formValues carries create-form fields back into the template on error.
type formValues struct {
	Title    string
	Excerpt  string
	Category string
	Tags     string
	Content  string
}

// renderForm renders the create form, optionally with an error banner
// and the previously entered values.
func (p *Public) renderForm(w http.ResponseWriter, values formValues, errMsg string, status int) {
	page, err := p.renderer.Render("new", render.PageData{
		Title: "New Post",
		Error: errMsg,
		Data: map[string]any{
			"title":    values.Title,
			"excerpt":  values.Excerpt,
			"category": values.Category,
			"tags":     values.Tags,
			"content":  values.Content,
		},
	})
	if err != nil {
		slog.Error("form render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page)
}

// splitTags turns a comma-separated tag string into a clean slice.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := []string{}
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// writeHTML writes a rendered page with the HTML content type.
func writeHTML(w http.ResponseWriter, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
