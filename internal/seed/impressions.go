// Package seed populates fixed reference data at startup.
package seed

import (
	"context"
	"fmt"

	"haven/internal/models"

	"gorm.io/gorm"
)

// impressionDescriptions maps each reaction kind to its seeded description.
var impressionDescriptions = map[models.ImpressionKind]string{
	models.ImpressionLike:      "The reader liked this article",
	models.ImpressionDislike:   "The reader disliked this article",
	models.ImpressionFavourite: "The reader saved this article as a favourite",
}

// Impressions inserts the closed set of reaction kinds. Safe to run on every
// startup; existing rows are left untouched.
func Impressions(ctx context.Context, db *gorm.DB) error {
	for _, kind := range []models.ImpressionKind{
		models.ImpressionLike,
		models.ImpressionDislike,
		models.ImpressionFavourite,
	} {
		impression := models.Impression{
			Name:        kind,
			Description: impressionDescriptions[kind],
		}
		if err := db.WithContext(ctx).
			Where(models.Impression{Name: kind}).
			FirstOrCreate(&impression).Error; err != nil {
			return fmt.Errorf("seed impression %s: %w", kind, err)
		}
	}
	return nil
}
