package httpclient

import (
	"context"
	"math/rand/v2"
	"net/http"
	"slices"
	"strconv"
	"time"
)

// RetryPolicy decides whether and when a failed fetch is attempted again.
// The zero value never retries.
type RetryPolicy struct {
	MaxRetries  int
	BaseDelay   time.Duration
	MaxDelay    time.Duration // 0 means uncapped
	Jitter      bool
	StatusCodes []int
}

// Enabled reports whether the policy allows at least one retry.
func (p RetryPolicy) Enabled() bool {
	return p.MaxRetries > 0
}

// Retryable reports whether a response with this status is worth another try.
func (p RetryPolicy) Retryable(status int) bool {
	return slices.Contains(p.StatusCodes, status)
}

// Backoff returns the wait before retry number attempt (0 based): BaseDelay
// doubled per attempt, capped at MaxDelay, plus up to 10% jitter.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	delay := p.BaseDelay
	for range min(attempt, 30) {
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			break
		}
		delay *= 2
	}
	delay = p.capped(delay)
	if p.Jitter && delay >= 10 {
		delay += rand.N(delay / 10)
	}
	return delay
}

// delay picks the wait before retrying after resp. A Retry-After header on
// resp wins over the computed backoff but still respects MaxDelay.
func (p RetryPolicy) delay(attempt int, resp *Response, now time.Time) time.Duration {
	if resp != nil {
		if d, ok := retryAfter(resp.Header.Get("Retry-After"), now); ok {
			return p.capped(d)
		}
	}
	return p.Backoff(attempt)
}

func (p RetryPolicy) capped(d time.Duration) time.Duration {
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// retryAfter parses a Retry-After value given either in seconds or as an
// HTTP date.
func retryAfter(value string, now time.Time) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	return max(at.Sub(now), 0), true
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
