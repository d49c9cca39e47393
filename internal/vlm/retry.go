package vlm

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// retryBuffer is added on top of a server-directed wait so the retry lands
// comfortably past the quota window.
const retryBuffer = 5 * time.Second

// Retrier wraps a Client with bounded retry on rate-limit failures. Any
// other failure propagates immediately. The service enforces a rolling
// per-minute quota, so a slow-down signal it already gave is worth honoring,
// but unbounded retry risks livelock.
type Retrier struct {
	client      Client
	maxAttempts int
	defaultWait time.Duration
	logger      *slog.Logger
}

// NewRetrier builds a Retrier allowing maxAttempts total attempts and
// waiting defaultWait when the service gives no retry-after hint.
func NewRetrier(client Client, maxAttempts int, defaultWait time.Duration, logger *slog.Logger) *Retrier {
	return &Retrier{
		client:      client,
		maxAttempts: maxAttempts,
		defaultWait: defaultWait,
		logger:      logger,
	}
}

// Infer calls the wrapped client, sleeping between rate-limited attempts.
// Exhausting the attempt budget propagates the last RateLimitError.
func (r *Retrier) Infer(ctx context.Context, req Request) (string, error) {
	attempt := 0
	var lastRateLimit *RateLimitError

	operation := func() (string, error) {
		attempt++
		text, err := r.client.Infer(ctx, req)
		if err == nil {
			return text, nil
		}

		var rl *RateLimitError
		if !errors.As(err, &rl) {
			lastRateLimit = nil
			return "", backoff.Permanent(err)
		}
		lastRateLimit = rl

		wait := r.defaultWait
		if rl.RetryAfter > 0 {
			wait = rl.RetryAfter + retryBuffer
		}
		r.logger.Info("rate limited, backing off",
			"wait", wait,
			"attempt", attempt,
			"max_attempts", r.maxAttempts)
		return "", backoff.RetryAfter(int(wait / time.Second))
	}

	text, err := backoff.Retry(ctx, operation, backoff.WithMaxTries(uint(r.maxAttempts)))
	if err != nil {
		if lastRateLimit != nil {
			return "", lastRateLimit
		}
		return "", err
	}
	return text, nil
}
