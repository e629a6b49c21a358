// Package ratelimit implements the fixed-window request limiter that fronts
// the meal generation endpoint.
//
// A fixed window resets the counter entirely at window boundaries, so a
// burst straddling a reset can see up to twice the limit in a short span.
// That is an accepted tradeoff for the simplicity of a counter per key, not
// something to correct with a sliding window.
package ratelimit

import (
	"sync"
	"time"
)

// Result is the outcome of a single Check call.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter decides whether a request identified by an opaque key may proceed.
// MemoryLimiter is the process-local implementation; a shared counter store
// can replace it behind this interface when running multiple instances.
type Limiter interface {
	Check(identifier string, limit int, window time.Duration) Result
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter keeps one fixed-window counter per identifier in a mutex-
// guarded map. State is process-local: running N instances multiplies the
// effective limit by N.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	done    chan struct{}
	once    sync.Once
}

// DefaultSweepInterval is how often expired counters are removed.
const DefaultSweepInterval = 5 * time.Minute

// NewMemoryLimiter creates a limiter and starts its background sweep. The
// sweep only bounds memory; Check re-checks expiry inline, so correctness
// never depends on the sweep having run. Call Close to stop the sweep.
func NewMemoryLimiter(sweepInterval time.Duration) *MemoryLimiter {
	if sweepInterval <= 0 {
		sweepInterval = DefaultSweepInterval
	}
	l := &MemoryLimiter{
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}
	go l.sweep(sweepInterval)
	return l
}

// Check records a request for identifier and reports whether it is allowed
// under limit requests per window. An expired entry is replaced as if
// absent. A denied request does not consume anything.
func (l *MemoryLimiter) Check(identifier string, limit int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[identifier]

	if !ok || now.After(e.resetAt) {
		resetAt := now.Add(window)
		l.entries[identifier] = &entry{count: 1, resetAt: resetAt}
		return Result{Allowed: true, Limit: limit, Remaining: limit - 1, ResetAt: resetAt}
	}

	if e.count < limit {
		e.count++
		return Result{Allowed: true, Limit: limit, Remaining: limit - e.count, ResetAt: e.resetAt}
	}

	return Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: e.resetAt}
}

// Status reports the remaining allowance without consuming a request.
func (l *MemoryLimiter) Status(identifier string, limit int) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok || time.Now().After(e.resetAt) {
		return Result{Allowed: true, Limit: limit, Remaining: limit}
	}
	remaining := limit - e.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: remaining > 0, Limit: limit, Remaining: remaining, ResetAt: e.resetAt}
}

// Close stops the background sweep.
func (l *MemoryLimiter) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *MemoryLimiter) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			now := time.Now()
			l.mu.Lock()
			for id, e := range l.entries {
				if now.After(e.resetAt) {
					delete(l.entries, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
