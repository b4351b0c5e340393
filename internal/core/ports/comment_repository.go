package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// ListCommentsFilter selects comments for a story or a single chapter.
// ChapterNumber == 0 selects story-level comments.
type ListCommentsFilter struct {
	StoryID       string
	ChapterNumber int
	Page          int
	Limit         int
}

// CommentRepository defines persistence for story and chapter comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListCommentsFilter) ([]*domain.Comment, int64, error)
}
