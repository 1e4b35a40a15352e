// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"inkwell/internal/models"
)

// ErrDuplicateSlug is returned when an insert collides with an existing
// post slug, either via the pre-insert lookup in the service layer or
// via the unique index on blogs.slug.
var ErrDuplicateSlug = errors.New("a post with this slug already exists")

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// BlogStore handles all post-related database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database handle.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

const blogColumns = `id, title, slug, content, excerpt, category, tags, created_at, updated_at`

// scanBlog scans a row into a Blog. Tags are stored as a JSONB array.
func scanBlog(scanner interface{ Scan(...any) error }) (*models.Blog, error) {
	var b models.Blog
	var tagsJSON []byte
	err := scanner.Scan(
		&b.ID, &b.Title, &b.Slug, &b.Content, &b.Excerpt,
		&b.Category, &tagsJSON, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tagsJSON, &b.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return &b, nil
}

// collectBlogs drains a result set into a slice of Blogs.
func collectBlogs(rows *sql.Rows) ([]models.Blog, error) {
	defer rows.Close()

	var items []models.Blog
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// List returns every post, newest first.
func (s *BlogStore) List(ctx context.Context) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return collectBlogs(rows)
}

// ListChronological returns every post, oldest first. The id tiebreak
// keeps the order total even when two posts share a timestamp.
func (s *BlogStore) ListChronological(ctx context.Context) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list blogs chronological: %w", err)
	}
	return collectBlogs(rows)
}

// FindBySlug retrieves a post by its slug. Returns nil if not found.
func (s *BlogStore) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+blogColumns+` FROM blogs WHERE slug = $1`, slug)
	b, err := scanBlog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog by slug: %w", err)
	}
	return b, nil
}

// ListByCategory returns up to limit posts sharing the given category,
// excluding the post identified by excludeSlug, oldest first.
func (s *BlogStore) ListByCategory(ctx context.Context, category, excludeSlug string, limit int) ([]models.Blog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+blogColumns+`
		FROM blogs
		WHERE category = $1 AND slug <> $2
		ORDER BY created_at ASC, id ASC
		LIMIT $3
	`, category, excludeSlug, limit)
	if err != nil {
		return nil, fmt.Errorf("list blogs by category: %w", err)
	}
	return collectBlogs(rows)
}

// Insert stores a new post and returns it with the server-assigned id
// and timestamps. The unique index on slug is the authoritative guard
// against duplicates; a violation is reported as ErrDuplicateSlug.
func (s *BlogStore) Insert(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO blogs (title, slug, content, excerpt, category, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+blogColumns,
		b.Title, b.Slug, b.Content, b.Excerpt, b.Category, tagsJSON,
	)
	result, err := scanBlog(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	return result, nil
}
