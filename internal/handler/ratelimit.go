package handler

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"pandar-wallet/internal/errors"
)

// RateLimiter keeps a token bucket per client, keyed by the
// authenticated user when available and the remote IP otherwise.
// Buckets are never evicted; acceptable for the lifetime of a process
// serving a bounded user population.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	disabled bool
}

func NewRateLimiter(perMinute int, disabled bool) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		disabled: disabled,
	}
}

func (l *RateLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.burst)
		l.buckets[key] = b
	}
	return b
}

// Middleware rejects requests above the configured rate with 429.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.disabled {
			next.ServeHTTP(w, r)
			return
		}

		key := UserID(r)
		if key == "" {
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				key = host
			} else {
				key = r.RemoteAddr
			}
		}

		if !l.limiterFor(key).Allow() {
			writeError(w, errors.NewAppError(errors.RateLimitExceeded, "too many requests, please try again later"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
