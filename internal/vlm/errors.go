package vlm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RateLimitError signals the service rejected a call for quota reasons.
// RetryAfter carries the server-directed wait when the service provided one,
// zero otherwise.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %s", e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("rate limited: %s", e.Message)
}

// ServiceError is any non-rate-limit remote failure. It is terminal for the
// chunk that triggered it.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("inference service error: %s", e.Message)
}

var retryInPattern = regexp.MustCompile(`retry in (\d+)`)

// classifyErr maps a raw provider error onto the boundary taxonomy. The
// provider surfaces rate limiting only through its error text, so the
// classification is string-based: HTTP 429 markers and the service's
// "retry in Ns" hint.
func classifyErr(err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	if strings.Contains(msg, "429") || strings.Contains(lower, "rate limit") || strings.Contains(lower, "resource exhausted") {
		var retryAfter time.Duration
		if m := retryInPattern.FindStringSubmatch(lower); m != nil {
			if secs, convErr := strconv.Atoi(m[1]); convErr == nil {
				retryAfter = time.Duration(secs) * time.Second
			}
		}
		return &RateLimitError{RetryAfter: retryAfter, Message: msg}
	}
	return &ServiceError{Message: msg}
}
