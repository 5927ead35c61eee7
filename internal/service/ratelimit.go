package service

import (
	"sync"
	"time"
)

// staleAfter is how long a bucket may sit untouched before it is dropped.
const staleAfter = 10 * time.Minute

// TokenBucket is an in-memory per-key rate limiter using the token bucket
// algorithm. It is safe for concurrent use. Stale buckets are swept during
// Allow, at most once per staleAfter, so no background goroutine is needed.
type TokenBucket struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      float64 // tokens added per second
	capacity  float64 // maximum tokens
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a rate limiter that allows up to capacity tokens per key,
// refilling at the given rate (tokens per second).
func NewTokenBucket(rate, capacity float64) *TokenBucket {
	return &TokenBucket{
		buckets:   make(map[string]*bucket),
		rate:      rate,
		capacity:  capacity,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Allow reports whether the given key is allowed to proceed under the rate limit.
// Each call consumes one token. Returns false if the bucket is empty.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := tb.now()
	if now.Sub(tb.lastSweep) >= staleAfter {
		tb.sweep(now)
	}

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, last: now}
		tb.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*tb.rate, tb.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

func (tb *TokenBucket) sweep(now time.Time) {
	cutoff := now.Add(-staleAfter)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
	tb.lastSweep = now
}
