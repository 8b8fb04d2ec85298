// Package cache provides the byte cache used in front of the embedding provider.
package cache

import (
	"context"
	"time"
)

// CacheService defines the cache service interface.
type CacheService interface {
	// Get retrieves a value from cache.
	// Returns: value, whether it exists
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value in cache.
	// ttl: expiration time, 0 uses the default
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases background resources.
	Close() error
}
