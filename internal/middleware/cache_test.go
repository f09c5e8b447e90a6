package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/collegeabroad/backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type cacheRig struct {
	cache  *ResponseCache
	engine *gin.Engine
	hits   int
}

func newCacheRig(t *testing.T) *cacheRig {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rig := &cacheRig{cache: NewResponseCache(rdb, time.Minute, zerolog.Nop())}

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/countries", rig.cache.Middleware("countries"), func(c *gin.Context) {
		rig.hits++
		response.Success(c, http.StatusOK, gin.H{"hits": rig.hits})
	})
	r.GET("/missing", rig.cache.Middleware("countries"), func(c *gin.Context) {
		rig.hits++
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})
	rig.engine = r
	return rig
}

type cachedBody struct {
	Data struct {
		Hits int `json:"hits"`
	} `json:"data"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

func (rig *cacheRig) fetch(t *testing.T, path string) (int, cachedBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	rig.engine.ServeHTTP(w, req)

	var body cachedBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestResponseCache(t *testing.T) {
	t.Run("miss populates, hit skips the handler", func(t *testing.T) {
		rig := newCacheRig(t)

		code, first := rig.fetch(t, "/countries")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, 1, first.Data.Hits)

		code, second := rig.fetch(t, "/countries")
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, 1, second.Data.Hits)
		require.Equal(t, 1, rig.hits)
	})

	t.Run("hits carry fresh metadata", func(t *testing.T) {
		rig := newCacheRig(t)

		_, first := rig.fetch(t, "/countries")
		_, second := rig.fetch(t, "/countries")
		require.NotEmpty(t, second.Metadata.RequestID)
		require.NotEqual(t, first.Metadata.RequestID, second.Metadata.RequestID)
	})

	t.Run("query string is part of the key", func(t *testing.T) {
		rig := newCacheRig(t)

		_, first := rig.fetch(t, "/countries")
		require.Equal(t, 1, first.Data.Hits)

		_, withQuery := rig.fetch(t, "/countries?page=2")
		require.Equal(t, 2, withQuery.Data.Hits)

		// Both entries are live independently.
		_, again := rig.fetch(t, "/countries")
		require.Equal(t, 1, again.Data.Hits)
	})

	t.Run("invalidate drops every entry for the resource", func(t *testing.T) {
		rig := newCacheRig(t)

		rig.fetch(t, "/countries")
		rig.fetch(t, "/countries?page=2")
		require.Equal(t, 2, rig.hits)

		require.NoError(t, rig.cache.Invalidate(context.Background(), "countries"))

		_, body := rig.fetch(t, "/countries")
		require.Equal(t, 3, body.Data.Hits)
		_, body = rig.fetch(t, "/countries?page=2")
		require.Equal(t, 4, body.Data.Hits)
	})

	t.Run("non-200 responses are not stored", func(t *testing.T) {
		rig := newCacheRig(t)

		code, _ := rig.fetch(t, "/missing")
		require.Equal(t, http.StatusNotFound, code)
		code, _ = rig.fetch(t, "/missing")
		require.Equal(t, http.StatusNotFound, code)
		require.Equal(t, 2, rig.hits)
	})
}
