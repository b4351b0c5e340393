package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// RatingRepository defines persistence for story and chapter ratings.
// ChapterNumber == 0 addresses the story-level rating.
type RatingRepository interface {
	// Upsert inserts or replaces the rating identified by
	// (story, chapter, user).
	Upsert(ctx context.Context, rating *domain.Rating) error
	FindByUser(ctx context.Context, storyID string, chapterNumber int, userID string) (*domain.Rating, error)
	Delete(ctx context.Context, storyID string, chapterNumber int, userID string) error
	ListByStory(ctx context.Context, storyID string, chapterNumber int) ([]*domain.Rating, error)
	// Average returns the mean value and vote count for a story or chapter.
	Average(ctx context.Context, storyID string, chapterNumber int) (float64, int64, error)
}
