package discogs

import "time"

// RateLimiter sleeps a fixed interval before every turn, including the
// first. It is deliberately not adaptive: the full delay applies whether or
// not the previous call succeeded and however long the caller's own work
// took.
type RateLimiter struct {
	interval time.Duration
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	if interval < 0 {
		interval = 0
	}
	return &RateLimiter{interval: interval}
}

func (r *RateLimiter) WaitTurn() {
	if r.interval > 0 {
		time.Sleep(r.interval)
	}
}
