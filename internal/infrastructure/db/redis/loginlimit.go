package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	failureWindow      = 15 * time.Minute
)

// LoginLimiter throttles repeated failed login attempts per identifier,
// backed by a Redis counter with a sliding expiry.
// Key format: loginfail:<identifier>
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// If maxFailures <= 0, defaultMaxFailures is used.
func NewLoginLimiter(client *redis.Client, maxFailures int) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	return &LoginLimiter{client: client, maxFailures: maxFailures}
}

// Allow reports whether identifier is still under the failure budget.
func (l *LoginLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(identifier)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login limit check: %w", err)
	}
	return n < l.maxFailures, nil
}

// RecordFailure bumps the failure counter and refreshes its expiry.
func (l *LoginLimiter) RecordFailure(ctx context.Context, identifier string) error {
	key := l.key(identifier)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, failureWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identifier string) error {
	return l.client.Del(ctx, l.key(identifier)).Err()
}

func (l *LoginLimiter) key(identifier string) string {
	return "loginfail:" + identifier
}
