package vlm

import (
	"errors"
	"testing"
	"time"
)

func TestClassifyErr(t *testing.T) {
	cases := []struct {
		name          string
		in            string
		wantRateLimit bool
		wantRetry     time.Duration
	}{
		{"http 429", "received status 429 from server", true, 0},
		{"rate limit text", "provider rate limit reached", true, 0},
		{"resource exhausted", "Resource exhausted: quota", true, 0},
		{"server directed wait", "429 too many requests, retry in 30 seconds", true, 30 * time.Second},
		{"other failure", "model not found", false, 0},
		{"connection refused", "dial tcp: connection refused", false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyErr(errors.New(tc.in))

			var rl *RateLimitError
			if errors.As(got, &rl) != tc.wantRateLimit {
				t.Fatalf("classifyErr(%q) = %T, rate-limit mismatch", tc.in, got)
			}
			if tc.wantRateLimit {
				if rl.RetryAfter != tc.wantRetry {
					t.Fatalf("retry after: got %s want %s", rl.RetryAfter, tc.wantRetry)
				}
				return
			}

			var se *ServiceError
			if !errors.As(got, &se) {
				t.Fatalf("expected ServiceError, got %T", got)
			}
		})
	}
}
