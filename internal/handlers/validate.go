package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post fields.
const (
	maxTitleLen    = 300
	maxSlugLen     = 300
	maxContentLen  = 100_000
	maxExcerptLen  = 1_000
	maxCategoryLen = 200
	maxTagLen      = 100
	maxTagCount    = 25
)

// validatePost checks post inputs and returns the first error found.
// All five named fields are required; the slug value itself is not
// inspected beyond presence and length, since the server recomputes it.
func validatePost(title, slug, content, excerpt, category string, tags []string) string {
	if strings.TrimSpace(title) == "" {
		return "Missing required field: title."
	}
	if strings.TrimSpace(slug) == "" {
		return "Missing required field: slug."
	}
	if strings.TrimSpace(content) == "" {
		return "Missing required field: content."
	}
	if strings.TrimSpace(excerpt) == "" {
		return "Missing required field: excerpt."
	}
	if strings.TrimSpace(category) == "" {
		return "Missing required field: category."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if utf8.RuneCountInString(excerpt) > maxExcerptLen {
		return "Excerpt is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(category) > maxCategoryLen {
		return "Category is too long (max 200 characters)."
	}
	if len(tags) > maxTagCount {
		return "Too many tags (max 25)."
	}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) > maxTagLen {
			return "Tag is too long (max 100 characters)."
		}
	}
	return ""
}
