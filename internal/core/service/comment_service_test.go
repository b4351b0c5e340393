package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

type stubCommentRepo struct {
	comments map[string]*domain.Comment
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: make(map[string]*domain.Comment)}
}

func (r *stubCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *stubCommentRepo) FindByID(_ context.Context, id string) (*domain.Comment, error) {
	if c, ok := r.comments[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, domain.ErrCommentNotFound
}

func (r *stubCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return domain.ErrCommentNotFound
	}
	clone := *c
	r.comments[c.ID] = &clone
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *stubCommentRepo) List(_ context.Context, filter ports.ListCommentsFilter) ([]*domain.Comment, int64, error) {
	var matched []*domain.Comment
	for _, c := range r.comments {
		if c.StoryID != filter.StoryID || c.ChapterNumber != filter.ChapterNumber {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func seedStory(t *testing.T, repo *stubStoryRepo, id string, chapters int) {
	t.Helper()
	story := &domain.Story{ID: id, Title: "Seeded", Author: domain.AuthorRef{Username: "author"}}
	for i := 1; i <= chapters; i++ {
		story.Chapters = append(story.Chapters, domain.Chapter{Number: i, Title: "ch"})
	}
	if err := repo.Create(context.Background(), story); err != nil {
		t.Fatalf("seed story: %v", err)
	}
}

func TestCommentService_CreateRequiresExistingTarget(t *testing.T) {
	comments := newStubCommentRepo()
	stories := newStubStoryRepo()
	svc := NewCommentService(comments, stories, zerolog.Nop())
	seedStory(t, stories, "s1", 1)
	reader := &domain.User{ID: "u1", Username: "reader"}

	if _, err := svc.Create(context.Background(), "missing", 0, "hi", reader); err != domain.ErrStoryNotFound {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "s1", 7, "hi", reader); err != domain.ErrChapterNotFound {
		t.Fatalf("expected ErrChapterNotFound, got %v", err)
	}

	comment, err := svc.Create(context.Background(), "s1", 1, "great chapter", reader)
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if comment.ID == "" || comment.UserID != "u1" || comment.Username != "reader" {
		t.Fatalf("comment not stamped with author: %+v", comment)
	}
}

func TestCommentService_OnlyAuthorMutates(t *testing.T) {
	comments := newStubCommentRepo()
	stories := newStubStoryRepo()
	svc := NewCommentService(comments, stories, zerolog.Nop())
	seedStory(t, stories, "s1", 0)

	author := &domain.User{ID: "u1", Username: "author"}
	other := &domain.User{ID: "u2", Username: "other"}

	comment, err := svc.Create(context.Background(), "s1", 0, "original", author)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(context.Background(), comment.ID, "edited", other); err != domain.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner on foreign edit, got %v", err)
	}
	if err := svc.Delete(context.Background(), comment.ID, other); err != domain.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner on foreign delete, got %v", err)
	}

	updated, err := svc.Update(context.Background(), comment.ID, "edited", author)
	if err != nil {
		t.Fatalf("author edit failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Fatalf("content not updated: %q", updated.Content)
	}
	if err := svc.Delete(context.Background(), comment.ID, author); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
}
