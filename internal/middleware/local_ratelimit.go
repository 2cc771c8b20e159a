package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/iliyamo/solvely-pub/internal/config"
)

type localEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// localLimiter keeps one rate.Limiter per identity key in process memory.
type localLimiter struct {
	cfg     config.RateLimitConfig
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]*localEntry
	swept   time.Time
}

// NewLocalLimiter is the single-instance counterpart of NewTokenBucket,
// with the same capacity and sustained rate.
func NewLocalLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return passthrough
	}
	return newLocalLimiter(cfg, time.Now).middleware
}

func newLocalLimiter(cfg config.RateLimitConfig, now func() time.Time) *localLimiter {
	return &localLimiter{cfg: cfg, now: now, entries: map[string]*localEntry{}, swept: now()}
}

func (l *localLimiter) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := identityKey(l.cfg.Prefix, l.cfg.KeyStrategy, c)
		allowed, remaining, retry := l.take(key)

		setLimitHeaders(c, l.cfg.Capacity, remaining)
		if !allowed {
			return tooManyRequests(c, retry)
		}
		return next(c)
	}
}

func (l *localLimiter) take(key string) (bool, int64, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.swept) > l.cfg.TTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > l.cfg.TTL {
				delete(l.entries, k)
			}
		}
		l.swept = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &localEntry{lim: rate.NewLimiter(rate.Limit(l.cfg.PerSecond()), l.cfg.Capacity)}
		l.entries[key] = e
	}
	e.lastSeen = now

	r := e.lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, 0, delay
	}
	return true, int64(e.lim.TokensAt(now)), 0
}
