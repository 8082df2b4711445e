package api

import (
	"sync"
	"time"
)

// RateLimitStore records the wall-clock time at which the backend's rate
// limit window resets. Concurrent 429s each record; the last writer sets the
// final time. Views read it to render a countdown.
type RateLimitStore struct {
	mu      sync.Mutex
	resetAt time.Time
}

func NewRateLimitStore() *RateLimitStore {
	return &RateLimitStore{}
}

func (s *RateLimitStore) Record(resetAt time.Time) {
	s.mu.Lock()
	s.resetAt = resetAt
	s.mu.Unlock()
}

// ResetAt returns the recorded reset time and whether it is still in the
// future.
func (s *RateLimitStore) ResetAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetAt, s.resetAt.After(time.Now())
}
