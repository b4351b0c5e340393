package ports

import (
	"context"

	"github.com/storyweave/story-platform/internal/core/domain"
)

// ListCommentsResult is one page of comments.
type ListCommentsResult struct {
	Items      []*domain.Comment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CommentService defines use-case operations for comments. Edits and deletes
// are allowed only for the comment's own author (plain user-id equality; the
// story ownership heuristic does not apply here).
type CommentService interface {
	Create(ctx context.Context, storyID string, chapterNumber int, content string, principal *domain.User) (*domain.Comment, error)
	List(ctx context.Context, filter ListCommentsFilter) (*ListCommentsResult, error)
	Update(ctx context.Context, id, content string, principal *domain.User) (*domain.Comment, error)
	Delete(ctx context.Context, id string, principal *domain.User) error
}
