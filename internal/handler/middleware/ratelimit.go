package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"local-deals/internal/handler/httperr"
	"local-deals/internal/pkg/config"
	"local-deals/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var (
	errRateLimited      = errs.New("rate limit exceeded")
	errLimiterUnhealthy = errs.New("rate limiter unavailable")
)

// RateLimiter limits per client IP through Redis and falls back to an in-process
// token bucket when Redis is absent or failing.
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	limit    redis_rate.Limit
	failOpen bool
	prefix   string
}

// rdb may be nil.
func NewRateLimiter(rdb *redis.Client, prefix string, limit redis_rate.Limit, failOpen bool) *RateLimiter {
	rl := &RateLimiter{
		fallback: newLocalLimiter(),
		limit:    limit,
		failOpen: failOpen,
		prefix:   prefix,
	}
	if rdb != nil {
		rl.limiter = redis_rate.NewLimiter(rdb)
	}
	return rl
}

func NewAuthRateLimiter(rdb *redis.Client, cfg config.RateLimitConfig) *RateLimiter {
	return NewRateLimiter(rdb, "auth", PerMinute(cfg.AuthPerMinute, cfg.AuthBurst), cfg.FailOpen)
}

func PerMinute(r, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: r, Burst: burst, Period: time.Minute}
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:ip:%s", rl.prefix, c.ClientIP())
		res, err := rl.allow(c.Request.Context(), key)
		if err != nil {
			if rl.failOpen {
				slog.Warn("rate limiter error, failing open", "error", err.Error(), "key", key)
				c.Next()
				return
			}
			httperr.AbortWithError(c, http.StatusServiceUnavailable, errLimiterUnhealthy, "Service unavailable", nil)
			return
		}

		setRateLimitHeaders(c, res, rl.limit)
		if res.Allowed == 0 {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
				fmt.Sprintf("Rate limit exceeded. Retry after %d seconds.", retryAfter), nil)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (*redis_rate.Result, error) {
	if rl.limiter == nil {
		return rl.fallback.allow(key, rl.limit), nil
	}
	res, err := rl.limiter.Allow(ctx, key, rl.limit)
	if err != nil {
		slog.Debug("redis rate limiter failed, using local limiter", "error", err.Error())
		return rl.fallback.allow(key, rl.limit), nil
	}
	return res, nil
}

func setRateLimitHeaders(c *gin.Context, res *redis_rate.Result, limit redis_rate.Limit) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
}

const entryTTL = 10 * time.Minute

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// localLimiter sweeps idle entries on access instead of running a janitor goroutine.
type localLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{limiters: map[string]*limiterEntry{}, now: time.Now}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > entryTTL {
		for k, e := range l.limiters {
			if now.Sub(e.lastAccess) > entryTTL {
				delete(l.limiters, k)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(ratePerSec), limit.Burst)}
		l.limiters[key] = entry
	}
	entry.lastAccess = now

	res := &redis_rate.Result{
		Limit:      limit,
		RetryAfter: -1,
		ResetAfter: time.Duration(float64(time.Second) / ratePerSec),
	}
	if entry.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = time.Duration(float64(time.Second) / ratePerSec)
	}
	if remaining := int(entry.limiter.TokensAt(now)); remaining > 0 {
		res.Remaining = remaining
	}
	return res
}
