// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// CategoryStore manages the deduplicated category name registry.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Upsert records a category name if it is not already present.
// Existing rows, including their created_at, are left untouched.
func (s *CategoryStore) Upsert(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// ListNames returns all category names in lexicographic order.
func (s *CategoryStore) ListNames(ctx context.Context) ([]string, error) {
	names, err := listNames(ctx, s.db, "categories")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}

// TagStore manages the deduplicated tag name registry.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

// Upsert records a tag name if it is not already present.
func (s *TagStore) Upsert(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, name)
	if err != nil {
		return fmt.Errorf("upsert tag: %w", err)
	}
	return nil
}

// ListNames returns all tag names in lexicographic order.
func (s *TagStore) ListNames(ctx context.Context) ([]string, error) {
	names, err := listNames(ctx, s.db, "tags")
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return names, nil
}

// listNames reads the name column of a registry table sorted by name.
// The table name is always a compile-time constant, never user input.
func listNames(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
