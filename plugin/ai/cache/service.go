package cache

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ServiceConfig configures the cache service.
//
// L1 is an in-process go-cache and is always on. L2 is Redis and is only
// used when RedisAddr is set, for multi-instance deployments.
type ServiceConfig struct {
	DefaultTTL      time.Duration // default: 30 minutes
	CleanupInterval time.Duration // default: 5 minutes
	RedisAddr       string
	KeyPrefix       string // default: "officehours:"
}

// DefaultServiceConfig returns default cache service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		DefaultTTL:      30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		KeyPrefix:       "officehours:",
	}
}

// Service implements CacheService with a memory tier and an optional Redis tier.
type Service struct {
	l1         *gocache.Cache
	l2         *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewService creates a new cache service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 30 * time.Minute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "officehours:"
	}

	s := &Service{
		l1:         gocache.New(cfg.DefaultTTL, cfg.CleanupInterval),
		prefix:     cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
	}

	if cfg.RedisAddr != "" {
		s.l2 = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
	}

	return s
}

// Get retrieves a value, trying memory first and backfilling it from Redis.
func (s *Service) Get(ctx context.Context, key string) ([]byte, bool) {
	if v, ok := s.l1.Get(key); ok {
		return v.([]byte), true
	}
	if s.l2 == nil {
		return nil, false
	}

	val, err := s.l2.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("redis cache get failed", "key", key, "error", err)
		}
		return nil, false
	}

	s.l1.Set(key, val, gocache.DefaultExpiration)
	return val, true
}

// Set stores a value in every enabled tier. Redis failures are logged, not returned.
func (s *Service) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.l1.Set(key, value, ttl)

	if s.l2 != nil {
		if err := s.l2.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
			slog.Warn("redis cache set failed", "key", key, "error", err)
		}
	}
	return nil
}

// Size returns the number of entries in the memory tier.
func (s *Service) Size() int {
	return s.l1.ItemCount()
}

// Close closes the Redis connection, if any.
func (s *Service) Close() error {
	if s.l2 != nil {
		return s.l2.Close()
	}
	return nil
}

// Ensure Service implements CacheService
var _ CacheService = (*Service)(nil)
