// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog represents a single published post. The slug is derived from the
// title at creation time and never recomputed afterwards; it is unique
// across all posts (enforced by the database).
type Blog struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogNavigation is the minimal projection of a post used for
// previous/next links. Derived on read, never persisted.
type BlogNavigation struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// BlogWithRelations is the composed page context for a single post:
// the post itself, its chronological neighbours, and up to three
// related posts (same category first, then tag overlap).
type BlogWithRelations struct {
	Blog    Blog            `json:"blog"`
	Prev    *BlogNavigation `json:"prev"`
	Next    *BlogNavigation `json:"next"`
	Related []Blog          `json:"related"`
}
