package service

import (
	"sync"
	"time"
)

type attemptRecord struct {
	count       int
	windowStart time.Time
}

type limiterKey struct {
	client string
	class  string
}

// AttemptLimiter throttles authentication attempts per client per endpoint
// class (login vs signup). It is advisory: state lives in process memory and
// resets on restart, which is acceptable for a deterrent.
type AttemptLimiter struct {
	mu      sync.Mutex
	records map[limiterKey]*attemptRecord

	maxAttempts int
	window      time.Duration

	now       func() time.Time
	lastSweep time.Time
}

func NewAttemptLimiter(maxAttempts int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		records:     make(map[limiterKey]*attemptRecord),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Allow records an attempt for (clientKey, class) and reports whether it is
// within the limit. When denied, retryAfter is the end of the current window.
func (l *AttemptLimiter) Allow(clientKey, class string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweepLocked(now)

	key := limiterKey{client: clientKey, class: class}
	rec, ok := l.records[key]
	if !ok {
		rec = &attemptRecord{windowStart: now}
		l.records[key] = rec
	}

	if now.Sub(rec.windowStart) > l.window {
		rec.count = 0
		rec.windowStart = now
	}

	if rec.count >= l.maxAttempts {
		return false, rec.windowStart.Add(l.window)
	}

	rec.count++

	return true, time.Time{}
}

// sweepLocked drops records whose window has long passed so the map does not
// grow one entry per distinct client forever. Runs at most once per window.
func (l *AttemptLimiter) sweepLocked(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now

	for key, rec := range l.records {
		if now.Sub(rec.windowStart) > l.window {
			delete(l.records, key)
		}
	}
}
