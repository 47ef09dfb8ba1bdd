// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/carbon-tracker/backend/internal/domain/error"
	"github.com/carbon-tracker/backend/internal/integration/entrypoint/dto"
)

// LimitStore counts attempts per key within a fixed window.
type LimitStore interface {
	// Hit records one attempt and returns the attempt count in the current window
	// and the time left until the window resets.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimiter limits attempts per client IP in a fixed window.
type RateLimiter struct {
	store       LimitStore
	prefix      string
	maxAttempts int64
	window      time.Duration
	enabled     bool
}

// RateLimiterConfig configures a RateLimiter.
type RateLimiterConfig struct {
	Prefix      string
	MaxAttempts int
	Window      time.Duration
	Enabled     bool
}

// NewRateLimiter creates a rate limiter backed by store.
func NewRateLimiter(store LimitStore, cfg RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		store:       store,
		prefix:      cfg.Prefix,
		maxAttempts: int64(cfg.MaxAttempts),
		window:      cfg.Window,
		enabled:     cfg.Enabled,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Store failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		key := rl.prefix + ":" + c.ClientIP()
		count, ttl, err := rl.store.Hit(c.Request.Context(), key, rl.window)
		if err != nil {
			slog.Warn("Rate limit store unavailable", "error", err, "key", key)
			c.Next()
			return
		}

		if count > rl.maxAttempts {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Round(time.Second).Seconds())))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// redisStore implements LimitStore with INCR and EXPIRE so limits hold across replicas.
type redisStore struct {
	client *redis.Client
}

// NewRedisLimitStore creates a Redis-backed LimitStore.
func NewRedisLimitStore(client *redis.Client) LimitStore {
	return &redisStore{client: client}
}

func (s *redisStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, window)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return incr.Val(), ttl.Val(), nil
}

type memoryEntry struct {
	attempts  int64
	resetTime time.Time
}

// memoryStore implements LimitStore in process memory.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryLimitStore creates a LimitStore local to this process.
func NewMemoryLimitStore() LimitStore {
	return &memoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *memoryStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.resetTime) {
			delete(s.entries, k)
		}
	}

	entry, ok := s.entries[key]
	if !ok {
		entry = &memoryEntry{resetTime: now.Add(window)}
		s.entries[key] = entry
	}
	entry.attempts++
	return entry.attempts, entry.resetTime.Sub(now), nil
}
