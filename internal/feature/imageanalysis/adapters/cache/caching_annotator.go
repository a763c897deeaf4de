// Package cache provides a Redis caching decorator for the ImageAnnotator port.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"vision_backend/internal/feature/imageanalysis/domain/entity"
	"vision_backend/internal/feature/imageanalysis/usecase"
)

// CachingAnnotator decorates an ImageAnnotator with Redis caching.
// Identical image content requested with the same kind and maxResults is
// served from Redis until the TTL expires.
type CachingAnnotator struct {
	inner     usecase.ImageAnnotator
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ImageAnnotator = (*CachingAnnotator)(nil)

// NewCachingAnnotator decorates an ImageAnnotator with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "vision".
func NewCachingAnnotator(rdb *redis.Client, ttl time.Duration, inner usecase.ImageAnnotator, namespace string) *CachingAnnotator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "vision"
	}
	return &CachingAnnotator{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Annotate returns a cached response when available, otherwise calls the inner annotator.
func (c *CachingAnnotator) Annotate(ctx context.Context, req *entity.BatchAnnotateRequest) (*entity.BatchAnnotateResponse, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Annotate(ctx, req)
	}
	key, ok := c.cacheKey(req)
	if !ok {
		return c.inner.Annotate(ctx, req)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.BatchAnnotateResponse
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the API
	out, err := c.inner.Annotate(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort); per-image errors are not cached
	if cacheable(out) {
		if b, err := json.Marshal(out); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
	}

	return out, nil
}

// cacheKey generates a cache key for a single-image, single-feature request.
func (c *CachingAnnotator) cacheKey(req *entity.BatchAnnotateRequest) (string, bool) {
	if req == nil || len(req.Requests) != 1 || len(req.Requests[0].Features) != 1 {
		return "", false
	}
	r := req.Requests[0]
	f := r.Features[0]
	return fmt.Sprintf("%s:%s:%d:%s",
		c.namespace,
		safe(f.Type.String()),
		f.MaxResults,
		entity.Digest([]byte(r.Image.Content)),
	), true
}

func cacheable(resp *entity.BatchAnnotateResponse) bool {
	if resp == nil || len(resp.Responses) == 0 {
		return false
	}
	for _, r := range resp.Responses {
		if r.Status() != nil {
			return false
		}
	}
	return true
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
