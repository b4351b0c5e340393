package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// ListStoriesFilter carries the query parameters for listing stories.
type ListStoriesFilter struct {
	AuthorUsername string // optional: stories by a given author
	Genre          string // optional: stories carrying this genre
	Tag            string // optional: stories carrying this tag
	Search         string // optional: substring match on title, synopsis, author display name
	Page           int    // 1-based
	Limit          int    // rows per page, capped by the service
}

// StoryRepository defines persistence for stories and their embedded
// chapters.
type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	FindByID(ctx context.Context, id string) (*domain.Story, error)
	Update(ctx context.Context, story *domain.Story) error
	Delete(ctx context.Context, id string) error
	// List returns one page of stories matching filter plus the total count.
	List(ctx context.Context, filter ListStoriesFilter) ([]*domain.Story, int64, error)
	// TopRated returns up to limit stories ordered by aggregate rating.
	TopRated(ctx context.Context, limit int) ([]*domain.Story, error)
	// SetRating updates only the denormalized aggregate rating.
	SetRating(ctx context.Context, id string, rating float64) error
}
