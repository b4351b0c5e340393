package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/storyweave/story-platform/internal/api/metrics"
	"github.com/storyweave/story-platform/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// ProcessFunc handles a single rating recompute event.
type ProcessFunc func(ctx context.Context, event ports.RatingEvent) error

// Dispatcher routes rating recompute events to a fixed set of workers using
// consistent hashing on the story id, so recomputes for the same story are
// processed in order and never race.
type Dispatcher struct {
	workers []chan ports.RatingEvent
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.RatingEvent, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.RatingEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context, process ProcessFunc) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch, process)
	}
}

// Enqueue sends an event to the worker responsible for its story.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.RatingEvent) {
	idx := d.shardIndex(event.StoryID)
	d.workers[idx] <- event
	metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a story id deterministically to a worker index.
func (d *Dispatcher) shardIndex(storyID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(storyID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.RatingEvent, process ProcessFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("story_id", event.StoryID).
					Int("worker_id", id).
					Msg("rating recompute failed")
			}
		}
	}
}
