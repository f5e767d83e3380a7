package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"seedrec/internal/domain/entity"
	"seedrec/internal/logging"
	"seedrec/internal/metrics"
)

type windowRecord struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a process-local fixed-window limiter. A key's window
// starts on its first request and its limit and reset time stay fixed until
// the window expires.
type MemoryLimiter struct {
	mu      sync.Mutex
	records map[string]*windowRecord
	limit   int // Max requests per window
	window  time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

type MemoryLimiterOption func(*MemoryLimiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryLimiterOption {
	return func(l *MemoryLimiter) { l.now = now }
}

func NewMemoryLimiter(limit int, window time.Duration, opts ...MemoryLimiterOption) *MemoryLimiter {
	l := &MemoryLimiter{
		records: make(map[string]*windowRecord),
		limit:   limit,
		window:  window,
		now:     time.Now,
		log:     logging.Component("ratelimit"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *MemoryLimiter) Limit() int { return l.limit }

// Check admits or rejects one request for key. The read, compare and
// increment happen under one lock.
func (l *MemoryLimiter) Check(ctx context.Context, key string) (entity.RateLimitStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[key]
	if !ok || now.After(rec.resetTime) {
		rec = &windowRecord{count: 1, resetTime: now.Add(l.window)}
		l.records[strings.Clone(key)] = rec
		metrics.RateLimitKeys.Set(float64(len(l.records)))
		return entity.RateLimitStatus{Allowed: true, Limit: l.limit, Remaining: l.limit - 1, ResetTime: rec.resetTime}, nil
	}

	if rec.count >= l.limit {
		metrics.RateLimitedTotal.Inc()
		return entity.RateLimitStatus{Allowed: false, Limit: l.limit, Remaining: 0, ResetTime: rec.resetTime}, nil
	}

	rec.count++
	return entity.RateLimitStatus{Allowed: true, Limit: l.limit, Remaining: l.limit - rec.count, ResetTime: rec.resetTime}, nil
}

// Sweep drops records whose window has expired and returns how many went.
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, rec := range l.records {
		if now.After(rec.resetTime) {
			delete(l.records, key)
			removed++
		}
	}
	metrics.RateLimitKeys.Set(float64(len(l.records)))
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (l *MemoryLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				l.log.Debug().Int("removed", n).Msg("swept expired rate limit records")
			}
		}
	}
}
