package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

// CommentService implements story and chapter comment use cases. Unlike
// stories, comments are guarded by plain author identity: only the user who
// wrote a comment may edit or delete it.
type CommentService struct {
	comments ports.CommentRepository
	stories  ports.StoryRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, stories ports.StoryRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, stories: stories, log: log}
}

// Create attaches a comment to a story (chapterNumber == 0) or to one of its
// chapters. The target must exist before anything is written.
func (s *CommentService) Create(ctx context.Context, storyID string, chapterNumber int, content string, principal *domain.User) (*domain.Comment, error) {
	story, err := s.stories.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if chapterNumber > 0 && story.ChapterByNumber(chapterNumber) == nil {
		return nil, domain.ErrChapterNotFound
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		ID:            uuid.NewString(),
		StoryID:       storyID,
		ChapterNumber: chapterNumber,
		UserID:        principal.ID,
		Username:      principal.Username,
		Content:       content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		s.log.Error().Err(err).Str("story_id", storyID).Msg("failed to create comment")
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) List(ctx context.Context, filter ports.ListCommentsFilter) (*ports.ListCommentsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.comments.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListCommentsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *CommentService) Update(ctx context.Context, id, content string, principal *domain.User) (*domain.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != principal.ID {
		return nil, domain.ErrNotOwner
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id string, principal *domain.User) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != principal.ID {
		return domain.ErrNotOwner
	}
	return s.comments.Delete(ctx, id)
}
