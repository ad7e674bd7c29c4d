package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter counts hits per key within a fixed window.
type Limiter interface {
	// Hit records one request and returns the count in the current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisLimiter keeps window counters in redis so limits hold across instances.
type RedisLimiter struct {
	rdb *redis.Client
}

func NewRedisLimiter(rdb *redis.Client) *RedisLimiter { return &RedisLimiter{rdb: rdb} }

func (l *RedisLimiter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	slot := time.Now().UnixNano() / int64(window)
	k := fmt.Sprintf("portfolio:rate_limit:%s:%d", key, slot)
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		l.rdb.PExpire(ctx, k, window+time.Second)
	}
	return count, nil
}

// MemoryLimiter keeps window counters in process memory.
type MemoryLimiter struct {
	mu    sync.Mutex
	cache *gocache.Cache
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{cache: gocache.New(time.Minute, 5*time.Minute)}
}

func (l *MemoryLimiter) Hit(_ context.Context, key string, window time.Duration) (int64, error) {
	slot := time.Now().UnixNano() / int64(window)
	k := fmt.Sprintf("%s:%d", key, slot)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.cache.Add(k, int64(1), window+time.Second); err == nil {
		return 1, nil
	}
	return l.cache.IncrementInt64(k, 1)
}

// RateLimitOptions configures RateLimit.
type RateLimitOptions struct {
	Name   string
	Max    int64
	Window time.Duration
	// OnLimit writes the throttled response; it must abort the context.
	OnLimit gin.HandlerFunc
	Log     *zap.Logger
}

// RateLimit enforces Max requests per client IP per Window. Limiter errors fail open.
func RateLimit(limiter Limiter, opts RateLimitOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if limiter == nil || ip == "" {
			c.Next()
			return
		}

		count, err := limiter.Hit(c.Request.Context(), opts.Name+":"+ip, opts.Window)
		if err != nil {
			if opts.Log != nil {
				opts.Log.Warn("rate limiter unavailable", zap.Error(err))
			}
			c.Next()
			return
		}

		if count > opts.Max {
			c.Header("Retry-After", fmt.Sprintf("%d", int(opts.Window.Seconds())))
			opts.OnLimit(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
