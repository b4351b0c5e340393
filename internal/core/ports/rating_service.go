package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// RatingStats summarizes the votes on a story or chapter.
type RatingStats struct {
	Average float64
	Count   int64
}

// RatingEvent asks for the aggregate rating of a story to be recomputed.
// Events for the same story must be processed in order.
type RatingEvent struct {
	StoryID string
}

// RatingService defines use-case operations for ratings.
type RatingService interface {
	// Rate records principal's vote, replacing any previous one, and
	// schedules a recompute of the story's aggregate rating.
	Rate(ctx context.Context, storyID string, chapterNumber, value int, principal *domain.User) (*domain.Rating, error)
	Stats(ctx context.Context, storyID string, chapterNumber int) (*RatingStats, error)
	MyRating(ctx context.Context, storyID string, chapterNumber int, principal *domain.User) (*domain.Rating, error)
	Unrate(ctx context.Context, storyID string, chapterNumber int, principal *domain.User) error
	// Recompute refreshes the denormalized aggregate on the story document.
	// Called by the background dispatcher.
	Recompute(ctx context.Context, event RatingEvent) error
}
