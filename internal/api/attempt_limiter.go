package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	unlockAttemptLimit  = 5
	unlockAttemptWindow = 15 * time.Minute
)

// failureLimiter blocks a client once it collects limit failures inside a
// sliding window. Successful attempts are not counted.
type failureLimiter struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newFailureLimiter(limit int, window time.Duration) *failureLimiter {
	return &failureLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// blocked reports whether key is locked out and how long until the oldest
// counted failure leaves the window.
func (limiter *failureLimiter) blocked(key string, now time.Time) (time.Duration, bool) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	recent := limiter.recentLocked(key, now)
	if len(recent) < limiter.limit {
		return 0, false
	}
	oldest := recent[len(recent)-limiter.limit]
	return oldest.Add(limiter.window).Sub(now), true
}

func (limiter *failureLimiter) recordFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.failures[key] = append(limiter.recentLocked(key, now), now)
}

func (limiter *failureLimiter) forget(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	delete(limiter.failures, key)
}

// recentLocked drops expired failures for key and returns the rest in order.
func (limiter *failureLimiter) recentLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-limiter.window)
	kept := limiter.failures[key][:0:0]
	for _, at := range limiter.failures[key] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = kept
	return kept
}

func clientKey(c *fiber.Ctx) string {
	if ip := strings.TrimSpace(c.IP()); ip != "" {
		return ip
	}
	return "unknown"
}
