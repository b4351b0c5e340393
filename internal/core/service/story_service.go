package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	defaultTopLimit  = 10
)

// StoryService implements story and chapter use cases. Mutations follow the
// fixed order: resolve the story (404 when absent), then check ownership
// (403 when the principal is not the recorded author), then apply.
type StoryService struct {
	repo ports.StoryRepository
	auth ports.AuthService
	log  zerolog.Logger
}

func NewStoryService(repo ports.StoryRepository, auth ports.AuthService, log zerolog.Logger) *StoryService {
	return &StoryService{repo: repo, auth: auth, log: log}
}

// Create persists a new story. The author reference is snapshotted from the
// authenticated principal so a client cannot claim someone else's identity.
func (s *StoryService) Create(ctx context.Context, input ports.CreateStoryInput) (*domain.Story, error) {
	if input.Author == nil {
		return nil, domain.ErrInvalidToken
	}

	now := time.Now().UTC()
	story := &domain.Story{
		ID:       uuid.NewString(),
		Title:    input.Title,
		Synopsis: input.Synopsis,
		Author: domain.AuthorRef{
			Username:       input.Author.Username,
			Email:          input.Author.Email,
			DisplayName:    input.Author.DisplayName,
			Bio:            input.Author.Bio,
			ProfilePicture: input.Author.ProfilePicture,
		},
		Genres:    input.Genres,
		Tags:      input.Tags,
		Chapters:  []domain.Chapter{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, story); err != nil {
		s.log.Error().Err(err).Msg("failed to create story")
		return nil, err
	}

	s.log.Info().Str("story_id", story.ID).Str("author", story.Author.Username).Msg("story created")
	return story, nil
}

func (s *StoryService) Get(ctx context.Context, id string) (*domain.Story, error) {
	return s.repo.FindByID(ctx, id)
}

// GetOwned returns the story only when principal owns it.
func (s *StoryService) GetOwned(ctx context.Context, id string, principal *domain.User) (*domain.Story, error) {
	story, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsOwner(story.Author, principal) {
		return nil, domain.ErrNotOwner
	}
	return story, nil
}

// AssertOwnership resolves the caller directly from the Authorization header
// and returns the story iff the caller owns it. Failure edges stay distinct:
// invalid token (401) vs unknown story (404) vs not the owner (403).
func (s *StoryService) AssertOwnership(ctx context.Context, id, authHeader string) (*domain.Story, error) {
	principal, err := s.auth.ResolveFromHeader(ctx, authHeader)
	if err != nil {
		return nil, err
	}
	return s.GetOwned(ctx, id, principal)
}

// Update replaces title, synopsis, genres, and tags of an owned story.
func (s *StoryService) Update(ctx context.Context, id string, input ports.UpdateStoryInput, principal *domain.User) (*domain.Story, error) {
	story, err := s.GetOwned(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	story.Title = input.Title
	story.Synopsis = input.Synopsis
	story.Genres = input.Genres
	story.Tags = input.Tags
	story.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// UpdateMetadata updates only the fields present in input, leaving the rest
// of the story untouched.
func (s *StoryService) UpdateMetadata(ctx context.Context, id string, input ports.UpdateStoryInput, principal *domain.User) (*domain.Story, error) {
	story, err := s.GetOwned(ctx, id, principal)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		story.Title = input.Title
	}
	if input.Synopsis != "" {
		story.Synopsis = input.Synopsis
	}
	if input.Genres != nil {
		story.Genres = input.Genres
	}
	if input.Tags != nil {
		story.Tags = input.Tags
	}
	story.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *StoryService) Delete(ctx context.Context, id string, principal *domain.User) error {
	if _, err := s.GetOwned(ctx, id, principal); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("story_id", id).Msg("story deleted")
	return nil
}

func (s *StoryService) List(ctx context.Context, filter ports.ListStoriesFilter) (*ports.ListStoriesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListStoriesResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *StoryService) TopRated(ctx context.Context, limit int) ([]*domain.Story, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return s.repo.TopRated(ctx, limit)
}

// AddChapter appends a chapter to an owned story, assigning the next number.
func (s *StoryService) AddChapter(ctx context.Context, storyID string, input ports.ChapterInput, principal *domain.User) (*domain.Chapter, error) {
	story, err := s.GetOwned(ctx, storyID, principal)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chapter := domain.Chapter{
		Number:    story.NextChapterNumber(),
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	story.Chapters = append(story.Chapters, chapter)
	story.UpdatedAt = now

	if err := s.repo.Update(ctx, story); err != nil {
		return nil, err
	}

	s.log.Info().Str("story_id", storyID).Int("chapter", chapter.Number).Msg("chapter added")
	return &chapter, nil
}

// UpdateChapter replaces the title and content of an existing chapter.
func (s *StoryService) UpdateChapter(ctx context.Context, storyID string, number int, input ports.ChapterInput, principal *domain.User) (*domain.Chapter, error) {
	story, err := s.GetOwned(ctx, storyID, principal)
	if err != nil {
		return nil, err
	}

	chapter := story.ChapterByNumber(number)
	if chapter == nil {
		return nil, domain.ErrChapterNotFound
	}

	chapter.Title = input.Title
	chapter.Content = input.Content
	chapter.UpdatedAt = time.Now().UTC()
	story.UpdatedAt = chapter.UpdatedAt

	if err := s.repo.Update(ctx, story); err != nil {
		return nil, err
	}
	return chapter, nil
}
