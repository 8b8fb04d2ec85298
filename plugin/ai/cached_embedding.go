package ai

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/officehours/plugin/ai/cache"
	"github.com/hrygo/officehours/plugin/ai/timeout"
)

// DefaultEmbeddingCacheTTL is how long a search key vector stays cached.
const DefaultEmbeddingCacheTTL = 24 * time.Hour

// CachedEmbeddingService caches query vectors and collapses concurrent
// requests for the same search key into one provider call.
// Document batches are passed through; ingestion texts rarely repeat.
type CachedEmbeddingService struct {
	inner EmbeddingService
	cache cache.CacheService
	model string
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedEmbeddingService wraps inner with c. model names the query
// embedding model and is part of every cache key, so vectors from another
// model are never served. A zero ttl uses DefaultEmbeddingCacheTTL.
func NewCachedEmbeddingService(inner EmbeddingService, c cache.CacheService, model string, ttl time.Duration) *CachedEmbeddingService {
	if ttl <= 0 {
		ttl = DefaultEmbeddingCacheTTL
	}
	return &CachedEmbeddingService{
		inner: inner,
		cache: c,
		model: model,
		ttl:   ttl,
	}
}

// Embed returns the cached vector for text or fetches it once for all
// concurrent callers. The shared provider call is detached from any single
// caller's cancellation and bounded by timeout.EmbeddingTimeout; each caller
// still stops waiting when its own ctx is done.
func (s *CachedEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	key := embeddingCacheKey(s.model, text)
	if raw, ok := s.cache.Get(ctx, key); ok {
		if vec, ok := decodeVector(raw); ok {
			return vec, nil
		}
	}

	ch := s.group.DoChan(key, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout.EmbeddingTimeout)
		defer cancel()

		vec, err := s.inner.Embed(callCtx, text)
		if err != nil {
			return nil, err
		}
		_ = s.cache.Set(callCtx, key, encodeVector(vec), s.ttl)
		return vec, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	// Callers sharing a flight must not alias one slice.
	vec := res.Val.([]float32)
	out := make([]float32, len(vec))
	copy(out, vec)
	return out, nil
}

func (s *CachedEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return s.inner.EmbedBatch(ctx, texts)
}

func (s *CachedEmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

func embeddingCacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(text))
	return "embedding:" + model + ":" + hex.EncodeToString(sum[:])
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, f := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(buf []byte) ([]float32, bool) {
	if len(buf) == 0 || len(buf)%4 != 0 {
		return nil, false
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, true
}

var _ EmbeddingService = (*CachedEmbeddingService)(nil)
