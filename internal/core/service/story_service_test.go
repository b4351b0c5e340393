package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

type stubStoryRepo struct {
	stories map[string]*domain.Story
}

func newStubStoryRepo() *stubStoryRepo {
	return &stubStoryRepo{stories: make(map[string]*domain.Story)}
}

func cloneStory(s *domain.Story) *domain.Story {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Chapters = append([]domain.Chapter(nil), s.Chapters...)
	clone.Genres = append([]string(nil), s.Genres...)
	clone.Tags = append([]string(nil), s.Tags...)
	return &clone
}

func (r *stubStoryRepo) Create(_ context.Context, story *domain.Story) error {
	r.stories[story.ID] = cloneStory(story)
	return nil
}

func (r *stubStoryRepo) FindByID(_ context.Context, id string) (*domain.Story, error) {
	if s, ok := r.stories[id]; ok {
		return cloneStory(s), nil
	}
	return nil, domain.ErrStoryNotFound
}

func (r *stubStoryRepo) Update(_ context.Context, story *domain.Story) error {
	if _, ok := r.stories[story.ID]; !ok {
		return domain.ErrStoryNotFound
	}
	r.stories[story.ID] = cloneStory(story)
	return nil
}

func (r *stubStoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.stories[id]; !ok {
		return domain.ErrStoryNotFound
	}
	delete(r.stories, id)
	return nil
}

func (r *stubStoryRepo) List(_ context.Context, filter ports.ListStoriesFilter) ([]*domain.Story, int64, error) {
	var matched []*domain.Story
	for _, s := range r.stories {
		if filter.AuthorUsername != "" && s.Author.Username != filter.AuthorUsername {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(s.Title), q) &&
				!strings.Contains(strings.ToLower(s.Synopsis), q) &&
				!strings.Contains(strings.ToLower(s.Author.DisplayName), q) {
				continue
			}
		}
		matched = append(matched, cloneStory(s))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubStoryRepo) TopRated(_ context.Context, limit int) ([]*domain.Story, error) {
	var all []*domain.Story
	for _, s := range r.stories {
		all = append(all, cloneStory(s))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Rating > all[j].Rating })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubStoryRepo) SetRating(_ context.Context, id string, rating float64) error {
	s, ok := r.stories[id]
	if !ok {
		return domain.ErrStoryNotFound
	}
	s.Rating = rating
	return nil
}

func newTestStoryService(repo ports.StoryRepository, users ports.UserRepository) (*StoryService, *AuthService) {
	tokens := NewTokenService("test-secret", time.Hour)
	auth := NewAuthService(users, tokens, nil, zerolog.Nop())
	return NewStoryService(repo, auth, zerolog.Nop()), auth
}

func seedAuthor(t *testing.T, users *stubUserRepo, username, email string) *domain.User {
	t.Helper()
	u, err := users.Create(context.Background(), &domain.User{
		Username: username, Email: email, DisplayName: username,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func TestStoryService_CreateSnapshotsAuthor(t *testing.T) {
	repo := newStubStoryRepo()
	users := newStubUserRepo()
	svc, _ := newTestStoryService(repo, users)
	author := seedAuthor(t, users, "alice", "alice@x.com")

	story, err := svc.Create(context.Background(), ports.CreateStoryInput{
		Title: "The Void", Synopsis: "A story", Genres: []string{"sci-fi"}, Author: author,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if story.ID == "" {
		t.Fatalf("expected generated story id")
	}
	if story.Author.Username != "alice" || story.Author.Email != "alice@x.com" {
		t.Fatalf("author snapshot not taken from principal: %+v", story.Author)
	}
}

func TestStoryService_Update_OwnershipGate(t *testing.T) {
	repo := newStubStoryRepo()
	users := newStubUserRepo()
	svc, _ := newTestStoryService(repo, users)
	owner := seedAuthor(t, users, "alice", "alice@x.com")
	intruder := seedAuthor(t, users, "mallory", "mallory@x.com")

	story, err := svc.Create(context.Background(), ports.CreateStoryInput{Title: "Mine", Author: owner})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := ports.UpdateStoryInput{Title: "Stolen"}

	if _, err := svc.Update(context.Background(), story.ID, input, intruder); err != domain.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for intruder, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", input, owner); err != domain.ErrStoryNotFound {
		t.Fatalf("expected ErrStoryNotFound before ownership, got %v", err)
	}

	updated, err := svc.Update(context.Background(), story.ID, input, owner)
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Title != "Stolen" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
}

func TestStoryService_Update_LegacyAuthorRef(t *testing.T) {
	repo := newStubStoryRepo()
	users := newStubUserRepo()
	svc, _ := newTestStoryService(repo, users)

	// Legacy document: username field holds an email-shaped string.
	story := &domain.Story{
		ID:     "legacy-1",
		Title:  "Old",
		Author: domain.AuthorRef{Username: "alice@x.com"},
	}
	if err := repo.Create(context.Background(), story); err != nil {
		t.Fatalf("seed: %v", err)
	}

	principal := seedAuthor(t, users, "alice", "alice@x.com")
	if _, err := svc.Update(context.Background(), "legacy-1", ports.UpdateStoryInput{Title: "New"}, principal); err != nil {
		t.Fatalf("legacy cross match should grant ownership: %v", err)
	}
}

func TestStoryService_AssertOwnership(t *testing.T) {
	repo := newStubStoryRepo()
	users := newStubUserRepo()
	svc, _ := newTestStoryService(repo, users)
	owner := seedAuthor(t, users, "bob", "bob@x.com")
	seedAuthor(t, users, "carol", "carol@x.com")

	story, err := svc.Create(context.Background(), ports.CreateStoryInput{Title: "Bob's", Author: owner})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	issue := func(subject string) string {
		tok, err := NewTokenService("test-secret", time.Hour).Issue(subject)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		return tok
	}

	got, err := svc.AssertOwnership(context.Background(), story.ID, "Bearer "+issue("bob"))
	if err != nil {
		t.Fatalf("owner assertion failed: %v", err)
	}
	if got.ID != story.ID {
		t.Fatalf("unexpected story: %+v", got)
	}

	if _, err := svc.AssertOwnership(context.Background(), story.ID, "Bearer "+issue("carol")); err != domain.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.AssertOwnership(context.Background(), story.ID, ""); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for missing header, got %v", err)
	}
	if _, err := svc.AssertOwnership(context.Background(), "missing", "Bearer "+issue("bob")); err != domain.ErrStoryNotFound {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}
}

func TestStoryService_Chapters(t *testing.T) {
	repo := newStubStoryRepo()
	users := newStubUserRepo()
	svc, _ := newTestStoryService(repo, users)
	owner := seedAuthor(t, users, "alice", "alice@x.com")
	intruder := seedAuthor(t, users, "mallory", "mallory@x.com")

	story, err := svc.Create(context.Background(), ports.CreateStoryInput{Title: "Serial", Author: owner})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ch1, err := svc.AddChapter(context.Background(), story.ID, ports.ChapterInput{Title: "One", Content: "..."}, owner)
	if err != nil {
		t.Fatalf("add chapter: %v", err)
	}
	if ch1.Number != 1 {
		t.Fatalf("first chapter should be number 1, got %d", ch1.Number)
	}

	ch2, err := svc.AddChapter(context.Background(), story.ID, ports.ChapterInput{Title: "Two", Content: "..."}, owner)
	if err != nil {
		t.Fatalf("add chapter 2: %v", err)
	}
	if ch2.Number != 2 {
		t.Fatalf("second chapter should be number 2, got %d", ch2.Number)
	}

	if _, err := svc.AddChapter(context.Background(), story.ID, ports.ChapterInput{Title: "X"}, intruder); err != domain.ErrNotOwner {
		t.Fatalf("expected ErrNotOwner for intruder, got %v", err)
	}

	updated, err := svc.UpdateChapter(context.Background(), story.ID, 1, ports.ChapterInput{Title: "One, revised", Content: "new"}, owner)
	if err != nil {
		t.Fatalf("update chapter: %v", err)
	}
	if updated.Title != "One, revised" || updated.Content != "new" {
		t.Fatalf("chapter not updated: %+v", updated)
	}

	if _, err := svc.UpdateChapter(context.Background(), story.ID, 99, ports.ChapterInput{}, owner); err != domain.ErrChapterNotFound {
		t.Fatalf("expected ErrChapterNotFound, got %v", err)
	}
}

func TestStoryService_UpdateMetadata_Partial(t *testing.T) {
	repo := newStubStoryRepo()
	users := newStubUserRepo()
	svc, _ := newTestStoryService(repo, users)
	owner := seedAuthor(t, users, "alice", "alice@x.com")

	story, err := svc.Create(context.Background(), ports.CreateStoryInput{
		Title: "Original", Synopsis: "Keep me", Genres: []string{"fantasy"}, Author: owner,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateMetadata(context.Background(), story.ID, ports.UpdateStoryInput{Title: "Renamed"}, owner)
	if err != nil {
		t.Fatalf("update metadata: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Synopsis != "Keep me" || len(updated.Genres) != 1 {
		t.Fatalf("untouched fields were overwritten: %+v", updated)
	}
}

func TestStoryService_ListPagination(t *testing.T) {
	repo := newStubStoryRepo()
	users := newStubUserRepo()
	svc, _ := newTestStoryService(repo, users)
	owner := seedAuthor(t, users, "alice", "alice@x.com")

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(context.Background(), ports.CreateStoryInput{Title: "S", Author: owner}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	page, err := svc.List(context.Background(), ports.ListStoriesFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 || len(page.Items) != 2 || page.TotalPages != 3 {
		t.Fatalf("unexpected page: total=%d items=%d pages=%d", page.Total, len(page.Items), page.TotalPages)
	}
}
