package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const defaultLimiterEntryTTL = 15 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter throttles login attempts per client key (the remote IP).
// Entries idle for longer than the TTL are pruned.
type LoginLimiter struct {
	perMinute int
	burst     int
	ttl       time.Duration
	nowTime   func() time.Time

	mu      sync.Mutex
	entries map[string]*limiterEntry
}

// NewLoginLimiter allows perMinute attempts per key with a burst of the same size
func NewLoginLimiter(perMinute int) *LoginLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	return &LoginLimiter{
		perMinute: perMinute,
		burst:     perMinute,
		ttl:       defaultLimiterEntryTTL,
		nowTime:   time.Now,
		entries:   map[string]*limiterEntry{},
	}
}

// Allow reports whether one more attempt from key is permitted now
func (l *LoginLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowTime()
	l.prune(now)

	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMinute)), l.burst),
		}
		l.entries[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// RetryAfter is the whole number of seconds until one attempt refills
func (l *LoginLimiter) RetryAfter() int {
	seconds := 60 / l.perMinute
	if seconds < 1 {
		return 1
	}
	return seconds
}

func (l *LoginLimiter) prune(now time.Time) {
	for k, v := range l.entries {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.entries, k)
		}
	}
}
