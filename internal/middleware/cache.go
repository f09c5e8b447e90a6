package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/collegeabroad/backend/internal/config"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CacheControl sets the Cache-Control header for public catalog responses.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}

// ResponseCache serves public catalog GETs from Redis. Mutating services
// call Invalidate to drop every cached response for their resource.
type ResponseCache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

// NewResponseCache creates a ResponseCache with the given entry TTL.
func NewResponseCache(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ResponseCache {
	return &ResponseCache{
		rdb: rdb,
		ttl: ttl,
		log: log.With().Str("component", "response_cache").Logger(),
	}
}

// Middleware returns a read-through cache for one catalog resource. Only
// GET responses with status 200 are stored.
func (rc *ResponseCache) Middleware(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}
		key := config.CacheKey.CatalogResponseKey(resource, path)

		cached, err := rc.rdb.Get(c.Request.Context(), key).Bytes()
		if err == nil {
			var payload cachedPayload
			if jsonErr := json.Unmarshal(cached, &payload); jsonErr == nil {
				// Re-envelope so the hit carries this request's ID and
				// timestamp, not the original request's.
				response.SuccessWithPagination(c, http.StatusOK, payload.Data, payload.Pagination)
				c.Abort()
				return
			}
			// Corrupt entry: drop it and serve uncached.
			rc.rdb.Del(c.Request.Context(), key)
		} else if !errors.Is(err, redis.Nil) {
			// Redis trouble degrades to uncached serving.
			rc.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}

		w := &bodyCapture{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		if w.Status() == http.StatusOK && w.body.Len() > 0 {
			var payload cachedPayload
			if err := json.Unmarshal(w.body.Bytes(), &payload); err != nil {
				rc.log.Warn().Err(err).Str("key", key).Msg("cache capture not json")
				return
			}
			buf, err := json.Marshal(payload)
			if err != nil {
				return
			}
			if err := rc.rdb.Set(c.Request.Context(), key, buf, rc.ttl).Err(); err != nil {
				rc.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
			}
		}
	}
}

// cachedPayload is the slice of the envelope worth replaying. Metadata is
// rebuilt on every hit.
type cachedPayload struct {
	Data       json.RawMessage      `json:"data"`
	Pagination *response.Pagination `json:"pagination,omitempty"`
}

// Invalidate removes every cached response for a resource.
func (rc *ResponseCache) Invalidate(ctx context.Context, resource string) error {
	pattern := config.CacheKey.CatalogResponsePrefix(resource) + "*"
	iter := rc.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := rc.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete cache key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
