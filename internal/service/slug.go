// Package service contains the application's business logic.
package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"haven/internal/repository"
)

// Slugify lowercases a title and collapses every run of non-alphanumeric
// characters into a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return "article"
	}
	return b.String()
}

// uniqueSlug probes for a free slug starting from the base, then base-1,
// base-2 and so on. Each probe restarts from the base, so deleting an article
// frees its slug for reuse.
func uniqueSlug(ctx context.Context, repo repository.ArticleRepository, base string) (string, error) {
	exists, err := repo.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		exists, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}
