// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog orchestrates post creation and read composition on top
// of the store primitives. Absence is a normal return value (nil, nil),
// never an error; everything else is surfaced to the caller.
package blog

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// ErrInvalidTitle is returned when a title yields an empty slug
// (for example a title made entirely of punctuation).
var ErrInvalidTitle = errors.New("title does not produce a usable slug")

// relatedLimit is the target size of the related-posts list.
const relatedLimit = 3

// Service exposes the blog operations used by the HTTP boundary.
type Service struct {
	blogs      *store.BlogStore
	categories *store.CategoryStore
	tags       *store.TagStore
}

// NewService creates a Service backed by the given stores.
func NewService(blogs *store.BlogStore, categories *store.CategoryStore, tags *store.TagStore) *Service {
	return &Service{blogs: blogs, categories: categories, tags: tags}
}

// CreateInput carries the caller-supplied attributes of a new post.
// Slug and timestamps are always server-assigned.
type CreateInput struct {
	Title    string
	Content  string
	Excerpt  string
	Category string
	Tags     []string
}

// Create stores a new post. The slug is derived from the title; a
// collision with an existing post fails with store.ErrDuplicateSlug
// before any write. Category and tag registry rows are upserted with
// create-if-absent semantics ahead of the insert — they are idempotent,
// so a conflict later leaves nothing to roll back.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Blog, error) {
	postSlug := slug.Generate(in.Title)
	if postSlug == "" {
		return nil, ErrInvalidTitle
	}

	existing, err := s.blogs.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, store.ErrDuplicateSlug
	}

	if err := s.categories.Upsert(ctx, in.Category); err != nil {
		return nil, err
	}

	tags := distinct(in.Tags)
	for _, tag := range tags {
		if err := s.tags.Upsert(ctx, tag); err != nil {
			return nil, fmt.Errorf("upsert tag %q: %w", tag, err)
		}
	}

	return s.blogs.Insert(ctx, &models.Blog{
		Title:    in.Title,
		Slug:     postSlug,
		Content:  in.Content,
		Excerpt:  in.Excerpt,
		Category: in.Category,
		Tags:     tags,
	})
}

// List returns every post, newest first.
func (s *Service) List(ctx context.Context) ([]models.Blog, error) {
	return s.blogs.List(ctx)
}

// Categories returns all known category names, lexicographically ordered.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.categories.ListNames(ctx)
}

// Tags returns all known tag names, lexicographically ordered.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return s.tags.ListNames(ctx)
}

// GetWithRelations assembles the full page context for one post: the
// post, its chronological neighbours, and up to three related posts.
// Returns nil, nil when no post matches the slug.
func (s *Service) GetWithRelations(ctx context.Context, postSlug string) (*models.BlogWithRelations, error) {
	b, err := s.blogs.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	// The full chronological order establishes prev/next and doubles as
	// the candidate pool for tag-based related posts.
	all, err := s.blogs.ListChronological(ctx)
	if err != nil {
		return nil, err
	}

	prev, next := neighbours(all, b.Slug)

	related, err := s.relatedPosts(ctx, b, all)
	if err != nil {
		return nil, err
	}

	return &models.BlogWithRelations{
		Blog:    *b,
		Prev:    prev,
		Next:    next,
		Related: related,
	}, nil
}

// relatedPosts fills the related list in two stages: same-category
// posts first, then tag-overlap candidates ranked by match count.
func (s *Service) relatedPosts(ctx context.Context, target *models.Blog, all []models.Blog) ([]models.Blog, error) {
	related, err := s.blogs.ListByCategory(ctx, target.Category, target.Slug, relatedLimit)
	if err != nil {
		return nil, err
	}
	if related == nil {
		related = []models.Blog{}
	}

	if len(related) < relatedLimit {
		selected := make(map[string]bool, len(related)+1)
		selected[target.Slug] = true
		for _, r := range related {
			selected[r.Slug] = true
		}

		var candidates []models.Blog
		for _, b := range all {
			if selected[b.Slug] {
				continue
			}
			if tagMatchCount(target.Tags, b.Tags) > 0 {
				candidates = append(candidates, b)
			}
		}

		ranked := rankByTagOverlap(target.Tags, candidates)
		for _, b := range ranked {
			if len(related) == relatedLimit {
				break
			}
			related = append(related, b)
		}
	}

	if len(related) > relatedLimit {
		related = related[:relatedLimit]
	}
	return related, nil
}

// distinct returns the input tags with duplicates removed, preserving
// first-occurrence order.
func distinct(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := []string{}
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result
}
