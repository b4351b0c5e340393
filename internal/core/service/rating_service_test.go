package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storyweave/story-platform/internal/core/domain"
	"github.com/storyweave/story-platform/internal/core/ports"
)

type ratingKey struct {
	storyID string
	chapter int
	userID  string
}

type stubRatingRepo struct {
	ratings map[ratingKey]*domain.Rating
}

func newStubRatingRepo() *stubRatingRepo {
	return &stubRatingRepo{ratings: make(map[ratingKey]*domain.Rating)}
}

func (r *stubRatingRepo) Upsert(_ context.Context, rating *domain.Rating) error {
	clone := *rating
	r.ratings[ratingKey{rating.StoryID, rating.ChapterNumber, rating.UserID}] = &clone
	return nil
}

func (r *stubRatingRepo) FindByUser(_ context.Context, storyID string, chapterNumber int, userID string) (*domain.Rating, error) {
	if rt, ok := r.ratings[ratingKey{storyID, chapterNumber, userID}]; ok {
		clone := *rt
		return &clone, nil
	}
	return nil, domain.ErrRatingNotFound
}

func (r *stubRatingRepo) Delete(_ context.Context, storyID string, chapterNumber int, userID string) error {
	key := ratingKey{storyID, chapterNumber, userID}
	if _, ok := r.ratings[key]; !ok {
		return domain.ErrRatingNotFound
	}
	delete(r.ratings, key)
	return nil
}

func (r *stubRatingRepo) ListByStory(_ context.Context, storyID string, chapterNumber int) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for key, rt := range r.ratings {
		if key.storyID == storyID && key.chapter == chapterNumber {
			clone := *rt
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRatingRepo) Average(_ context.Context, storyID string, chapterNumber int) (float64, int64, error) {
	sum, count := 0, int64(0)
	for key, rt := range r.ratings {
		if key.storyID == storyID && key.chapter == chapterNumber {
			sum += rt.Value
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type recordingQueue struct {
	events []ports.RatingEvent
}

func (q *recordingQueue) Enqueue(e ports.RatingEvent) {
	q.events = append(q.events, e)
}

func TestRatingService_RateUpsertsAndEnqueues(t *testing.T) {
	ratings := newStubRatingRepo()
	stories := newStubStoryRepo()
	queue := &recordingQueue{}
	svc := NewRatingService(ratings, stories, queue, zerolog.Nop())
	seedStory(t, stories, "s1", 0)
	voter := &domain.User{ID: "u1", Username: "voter"}

	if _, err := svc.Rate(context.Background(), "s1", 0, 9, voter); err != domain.ErrInvalidRating {
		t.Fatalf("expected ErrInvalidRating for out-of-range value, got %v", err)
	}
	if _, err := svc.Rate(context.Background(), "missing", 0, 4, voter); err != domain.ErrStoryNotFound {
		t.Fatalf("expected ErrStoryNotFound, got %v", err)
	}

	if _, err := svc.Rate(context.Background(), "s1", 0, 4, voter); err != nil {
		t.Fatalf("rate: %v", err)
	}
	// Re-rating replaces the previous vote instead of adding a second one.
	if _, err := svc.Rate(context.Background(), "s1", 0, 2, voter); err != nil {
		t.Fatalf("re-rate: %v", err)
	}

	mine, err := svc.MyRating(context.Background(), "s1", 0, voter)
	if err != nil {
		t.Fatalf("my rating: %v", err)
	}
	if mine.Value != 2 {
		t.Fatalf("expected replaced value 2, got %d", mine.Value)
	}

	if len(queue.events) != 2 || queue.events[0].StoryID != "s1" {
		t.Fatalf("expected 2 recompute events for s1, got %+v", queue.events)
	}
}

func TestRatingService_RecomputeUpdatesAggregate(t *testing.T) {
	ratings := newStubRatingRepo()
	stories := newStubStoryRepo()
	svc := NewRatingService(ratings, stories, nil, zerolog.Nop())
	seedStory(t, stories, "s1", 0)

	for i, v := range []int{5, 4} {
		voter := &domain.User{ID: string(rune('a' + i)), Username: "voter"}
		if _, err := svc.Rate(context.Background(), "s1", 0, v, voter); err != nil {
			t.Fatalf("rate %d: %v", i, err)
		}
	}

	if err := svc.Recompute(context.Background(), ports.RatingEvent{StoryID: "s1"}); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	story, err := stories.FindByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("find story: %v", err)
	}
	if story.Rating != 4.5 {
		t.Fatalf("expected aggregate 4.5, got %v", story.Rating)
	}
}

func TestRatingService_Stats(t *testing.T) {
	ratings := newStubRatingRepo()
	stories := newStubStoryRepo()
	svc := NewRatingService(ratings, stories, nil, zerolog.Nop())
	seedStory(t, stories, "s1", 1)

	for i, v := range []int{5, 4, 3} {
		voter := &domain.User{ID: string(rune('a' + i))}
		if _, err := svc.Rate(context.Background(), "s1", 1, v, voter); err != nil {
			t.Fatalf("rate chapter: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background(), "s1", 1)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Count != 3 || stats.Average != 4 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestRatingService_Unrate(t *testing.T) {
	ratings := newStubRatingRepo()
	stories := newStubStoryRepo()
	queue := &recordingQueue{}
	svc := NewRatingService(ratings, stories, queue, zerolog.Nop())
	seedStory(t, stories, "s1", 0)
	voter := &domain.User{ID: "u1"}

	if err := svc.Unrate(context.Background(), "s1", 0, voter); err != domain.ErrRatingNotFound {
		t.Fatalf("expected ErrRatingNotFound, got %v", err)
	}

	if _, err := svc.Rate(context.Background(), "s1", 0, 5, voter); err != nil {
		t.Fatalf("rate: %v", err)
	}
	if err := svc.Unrate(context.Background(), "s1", 0, voter); err != nil {
		t.Fatalf("unrate: %v", err)
	}
	if _, err := svc.MyRating(context.Background(), "s1", 0, voter); err != domain.ErrRatingNotFound {
		t.Fatalf("rating should be gone, got %v", err)
	}
}
