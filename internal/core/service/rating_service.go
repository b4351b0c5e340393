package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

// RatingEnqueuer hands rating events to the background recompute dispatcher.
type RatingEnqueuer interface {
	Enqueue(event ports.RatingEvent)
}

// RatingService implements story and chapter rating use cases. Votes are
// written synchronously; the story's denormalized aggregate is refreshed
// asynchronously through the dispatcher so a burst of votes on one story
// does not serialize requests.
type RatingService struct {
	ratings ports.RatingRepository
	stories ports.StoryRepository
	queue   RatingEnqueuer
	log     zerolog.Logger
}

func NewRatingService(ratings ports.RatingRepository, stories ports.StoryRepository, queue RatingEnqueuer, log zerolog.Logger) *RatingService {
	return &RatingService{ratings: ratings, stories: stories, queue: queue, log: log}
}

// Rate records principal's vote, replacing any previous one.
func (s *RatingService) Rate(ctx context.Context, storyID string, chapterNumber, value int, principal *domain.User) (*domain.Rating, error) {
	if !domain.ValidRatingValue(value) {
		return nil, domain.ErrInvalidRating
	}

	story, err := s.stories.FindByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if chapterNumber > 0 && story.ChapterByNumber(chapterNumber) == nil {
		return nil, domain.ErrChapterNotFound
	}

	now := time.Now().UTC()
	rating := &domain.Rating{
		ID:            uuid.NewString(),
		StoryID:       storyID,
		ChapterNumber: chapterNumber,
		UserID:        principal.ID,
		Value:         value,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.ratings.Upsert(ctx, rating); err != nil {
		s.log.Error().Err(err).Str("story_id", storyID).Msg("failed to upsert rating")
		return nil, err
	}

	if s.queue != nil {
		s.queue.Enqueue(ports.RatingEvent{StoryID: storyID})
	}
	return rating, nil
}

func (s *RatingService) Stats(ctx context.Context, storyID string, chapterNumber int) (*ports.RatingStats, error) {
	if _, err := s.stories.FindByID(ctx, storyID); err != nil {
		return nil, err
	}

	avg, count, err := s.ratings.Average(ctx, storyID, chapterNumber)
	if err != nil {
		return nil, err
	}
	return &ports.RatingStats{Average: roundRating(avg), Count: count}, nil
}

func (s *RatingService) MyRating(ctx context.Context, storyID string, chapterNumber int, principal *domain.User) (*domain.Rating, error) {
	return s.ratings.FindByUser(ctx, storyID, chapterNumber, principal.ID)
}

func (s *RatingService) Unrate(ctx context.Context, storyID string, chapterNumber int, principal *domain.User) error {
	if err := s.ratings.Delete(ctx, storyID, chapterNumber, principal.ID); err != nil {
		return err
	}
	if s.queue != nil {
		s.queue.Enqueue(ports.RatingEvent{StoryID: storyID})
	}
	return nil
}

// Recompute refreshes the story's denormalized aggregate from the rating
// collection. Invoked by the dispatcher worker owning the story's shard, so
// recomputes for the same story never race each other.
func (s *RatingService) Recompute(ctx context.Context, event ports.RatingEvent) error {
	avg, _, err := s.ratings.Average(ctx, event.StoryID, 0)
	if err != nil {
		return err
	}

	if err := s.stories.SetRating(ctx, event.StoryID, roundRating(avg)); err != nil {
		return err
	}

	s.log.Debug().Str("story_id", event.StoryID).Float64("rating", avg).Msg("story rating recomputed")
	return nil
}

// roundRating keeps aggregates at two decimal places.
func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
