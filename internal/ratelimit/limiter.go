package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a per-client token bucket with a fixed rate and burst shared
// by every key.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	perSec  float64
	burst   float64
	idleTTL time.Duration
	swept   time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewLimiter returns nil when rps or burst is not positive; a nil Limiter
// allows everything.
func NewLimiter(rps float64, burst int) *Limiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	// A bucket idle long enough to refill completely is indistinguishable
	// from a new one.
	ttl := time.Duration(float64(burst) / rps * float64(time.Second))
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		perSec:  rps,
		burst:   float64(burst),
		idleTTL: ttl,
	}
}

// Allow reports whether a request from key may proceed at now.
func (l *Limiter) Allow(key string, now time.Time) bool {
	if l == nil || key == "" {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.burst, last: now}
		l.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	b.tokens += elapsed * l.perSec
	if b.tokens > l.burst {
		b.tokens = l.burst
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// Len returns the number of tracked clients.
func (l *Limiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.swept) < l.idleTTL {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.last) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.swept = now
}
