// Package metrics defines and registers all custom Prometheus metrics for
// the story platform API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto; the router exposes the default registry on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storyweave"

// AuthResolutionsTotal counts bearer-token resolutions by the request filter.
// Label:
//   - result: "ok" (principal resolved) or "rejected" (invalid token,
//     unknown subject, wrong scheme)
var AuthResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_resolutions_total",
		Help:      "Total number of bearer token resolution attempts.",
	},
	[]string{"result"},
)

// LoginAttemptsTotal counts login requests.
// Label:
//   - result: "ok", "invalid_credentials", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// OwnershipDenialsTotal counts mutating story/chapter requests rejected
// because the authenticated caller is not the recorded author.
var OwnershipDenialsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denials_total",
		Help:      "Total number of requests denied by the ownership check.",
	},
)

// StoriesCreatedTotal counts newly published stories.
var StoriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stories_created_total",
		Help:      "Total number of stories created.",
	},
)

// RatingQueueDepth tracks the number of pending recompute events per
// dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", ...)
var RatingQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rating_queue_depth",
		Help:      "Current number of rating recompute events pending per worker.",
	},
	[]string{"worker_id"},
)
