package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"inkwell/internal/blog"
	"inkwell/internal/store"
)

// Seed populates the database with a handful of sample posts for
// development. Posts are created through the blog service so slugs,
// category rows, and tag rows are assigned exactly as they would be in
// production. A no-op if any posts already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blogs").Scan(&count); err != nil {
		return fmt.Errorf("seed check blogs: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	svc := blog.NewService(
		store.NewBlogStore(db),
		store.NewCategoryStore(db),
		store.NewTagStore(db),
	)

	samples := []blog.CreateInput{
		{
			Title:    "Welcome to Inkwell",
			Content:  "Inkwell is up and running. This sample post was created by the development seeder.\n\nWrite your first real post from the **New Post** form.",
			Excerpt:  "Inkwell is up and running.",
			Category: "announcements",
			Tags:     []string{"inkwell", "meta"},
		},
		{
			Title:    "Writing Posts in Markdown",
			Content:  "Post content is rendered as Markdown on the public site:\n\n```go\nfunc main() {\n\tfmt.Println(\"hello\")\n}\n```\n\nRaw HTML passes through unchanged.",
			Excerpt:  "How post content is rendered.",
			Category: "guides",
			Tags:     []string{"markdown", "inkwell"},
		},
		{
			Title:    "Related Posts Explained",
			Content:  "Every post page suggests up to three related posts: same-category posts first, then posts ranked by how many tags they share.",
			Excerpt:  "How related-post suggestions work.",
			Category: "guides",
			Tags:     []string{"markdown", "navigation"},
		},
	}

	ctx := context.Background()
	for _, in := range samples {
		if _, err := svc.Create(ctx, in); err != nil {
			return fmt.Errorf("seed post %q: %w", in.Title, err)
		}
	}

	slog.Info("database seeded with sample posts", "count", len(samples))
	return nil
}
