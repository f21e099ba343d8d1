// Package ratelimit wraps golang.org/x/time/rate for outbound calls and HTTP handlers.
package ratelimit

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/fd1az/cap-alpha/internal/apperror"
)

// Limiter is a token bucket.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a limiter allowing requestsPerMinute with a 10% burst (minimum 1).
// A non-positive rate disables limiting.
func New(requestsPerMinute int) *Limiter {
	if requestsPerMinute <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	burst := max(requestsPerMinute/10, 1)
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)}
}

// NewPerSecond creates a limiter from a per-second rate and explicit burst.
func NewPerSecond(rps float64, burst int) *Limiter {
	if rps <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), max(burst, 1))}
}

// Wait blocks until a token is available or ctx is done. The context error is
// reported as a rate limit error.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return apperror.New(apperror.CodeRateLimitExceeded, apperror.WithCause(err))
	}
	return nil
}

// Allow reports whether an event may happen now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Middleware rejects requests with 429 when the bucket is empty.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter.Allow() {
			apperror.WriteJSON(w, apperror.New(apperror.CodeRateLimitExceeded, apperror.WithContext(r.URL.Path)))
			return
		}
		next.ServeHTTP(w, r)
	})
}
