// Package ratelimit guards the unauthenticated auth endpoints with a
// Redis sliding-window counter keyed by client IP.
package ratelimit

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"social-service/internal/shared/httpx"
)

type Limiter struct{ rdb *redis.Client }

func New(addr string) *Limiter {
	return &Limiter{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func (l *Limiter) Ping(ctx context.Context) error {
	return l.rdb.Ping(ctx).Err()
}

func (l *Limiter) Close() error { return l.rdb.Close() }

func (l *Limiter) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	k := "rl:" + key
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}
	n := incr.Val()
	return n <= limit, n, nil
}

// LimitByIP wraps next, rejecting clients that exceed limit requests per
// window.
func (l *Limiter) LimitByIP(limit int64, window time.Duration, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, _, err := l.Allow(r.Context(), clientIP(r), limit, window)
		if err != nil {
			httpx.WriteError(w, http.StatusTooManyRequests, errors.New("rate limiter unavailable"), "rate_limiter_error")
			return
		}
		if !ok {
			httpx.WriteError(w, http.StatusTooManyRequests, errors.New("rate limit exceeded"), "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
