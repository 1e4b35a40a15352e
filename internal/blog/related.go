// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"sort"

	"inkwell/internal/models"
)

// tagMatchCount returns how many of the candidate's tags appear in the
// target tag set.
func tagMatchCount(target, candidate []string) int {
	targetSet := make(map[string]bool, len(target))
	for _, t := range target {
		targetSet[t] = true
	}
	count := 0
	for _, t := range candidate {
		if targetSet[t] {
			count++
		}
	}
	return count
}

// rankByTagOverlap orders candidates by descending shared-tag count
// with the target. The sort is stable: candidates with equal match
// counts keep their original retrieval order.
func rankByTagOverlap(targetTags []string, candidates []models.Blog) []models.Blog {
	ranked := make([]models.Blog, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return tagMatchCount(targetTags, ranked[i].Tags) > tagMatchCount(targetTags, ranked[j].Tags)
	})
	return ranked
}

// neighbours locates slug in the chronologically ordered posts and
// returns navigation references to its predecessor and successor.
// Either may be nil at the boundaries.
func neighbours(chronological []models.Blog, slug string) (prev, next *models.BlogNavigation) {
	idx := -1
	for i, b := range chronological {
		if b.Slug == slug {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	if idx > 0 {
		prev = navRef(chronological[idx-1])
	}
	if idx < len(chronological)-1 {
		next = navRef(chronological[idx+1])
	}
	return prev, next
}

// navRef projects a post down to the title and slug used by prev/next links.
func navRef(b models.Blog) *models.BlogNavigation {
	return &models.BlogNavigation{Title: b.Title, Slug: b.Slug}
}
