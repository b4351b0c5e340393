package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// CreateStoryInput carries all data needed to create a story. The author
// snapshot is taken from the authenticated principal, never from the payload.
type CreateStoryInput struct {
	Title    string
	Synopsis string
	Genres   []string
	Tags     []string
	Author   *domain.User
}

// UpdateStoryInput is the full-replace update for a story's own fields.
// Chapters and the author snapshot are not touched.
type UpdateStoryInput struct {
	Title    string
	Synopsis string
	Genres   []string
	Tags     []string
}

// ChapterInput carries chapter content for add/edit operations.
type ChapterInput struct {
	Title   string
	Content string
}

// ListStoriesResult is one page of stories.
type ListStoriesResult struct {
	Items      []*domain.Story
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// StoryService defines use-case operations for stories and chapters. Every
// mutating operation verifies existence first and then ownership of the
// story by the given principal, returning domain.ErrStoryNotFound or
// domain.ErrNotOwner respectively.
type StoryService interface {
	Create(ctx context.Context, input CreateStoryInput) (*domain.Story, error)
	Get(ctx context.Context, id string) (*domain.Story, error)
	// GetOwned returns the story only when principal owns it.
	GetOwned(ctx context.Context, id string, principal *domain.User) (*domain.Story, error)
	// AssertOwnership resolves the caller from a raw Authorization header and
	// returns the story iff that caller owns it.
	AssertOwnership(ctx context.Context, id, authHeader string) (*domain.Story, error)
	Update(ctx context.Context, id string, input UpdateStoryInput, principal *domain.User) (*domain.Story, error)
	UpdateMetadata(ctx context.Context, id string, input UpdateStoryInput, principal *domain.User) (*domain.Story, error)
	Delete(ctx context.Context, id string, principal *domain.User) error
	List(ctx context.Context, filter ListStoriesFilter) (*ListStoriesResult, error)
	TopRated(ctx context.Context, limit int) ([]*domain.Story, error)
	AddChapter(ctx context.Context, storyID string, input ChapterInput, principal *domain.User) (*domain.Chapter, error)
	UpdateChapter(ctx context.Context, storyID string, number int, input ChapterInput, principal *domain.User) (*domain.Chapter, error)
}
