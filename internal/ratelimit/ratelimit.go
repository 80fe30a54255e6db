package ratelimit

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"log/slog"
)

// Limiter is an in-memory fixed window rate limiter keyed by client.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	size    time.Duration
	max     int
	now     func() time.Time
}

type window struct {
	used  int
	reset time.Time
}

// NewLimiter allows max requests per key in every window of size d.
// Expired windows are swept until ctx is done.
func NewLimiter(ctx context.Context, d time.Duration, max int) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		size:    d,
		max:     max,
		now:     time.Now,
	}
	go l.sweepEvery(ctx, time.Minute)
	return l
}

// take spends one request from key's budget. It reports whether the request
// fits, what is left and when the window resets.
func (l *Limiter) take(key string) (bool, int, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.reset) {
		w = &window{reset: now.Add(l.size)}
		l.windows[key] = w
	}
	if w.used >= l.max {
		return false, 0, w.reset
	}
	w.used++
	return true, l.max - w.used, w.reset
}

// Allow reports whether one more request for key fits in the current window.
func (l *Limiter) Allow(key string) bool {
	ok, _, _ := l.take(key)
	return ok
}

// Remaining returns how many requests key may still make in the current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !l.now().Before(w.reset) {
		return l.max
	}
	return max(l.max-w.used, 0)
}

func (l *Limiter) sweepEvery(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	for key, w := range l.windows {
		if !now.Before(w.reset) {
			delete(l.windows, key)
		}
	}
}

// Middleware rejects requests over the budget of the key returned by keyFn
// with 429.
func (l *Limiter) Middleware(keyFn func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			ok, left, reset := l.take(key)

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(l.max))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(left))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
			if !ok {
				slog.Default().WarnContext(r.Context(), "rate limit exceeded",
					slog.String("key", key),
				)
				wait := math.Ceil(reset.Sub(l.now()).Seconds())
				h.Set("Retry-After", strconv.Itoa(int(max(wait, 1))))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
