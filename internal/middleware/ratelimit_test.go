package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	t.Run("burst then throttle", func(t *testing.T) {
		t.Parallel()
		rl := NewRateLimiter(1, 2)
		r := gin.New()
		r.GET("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

		hit := func(ip string) int {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = ip + ":1234"
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			return w.Code
		}

		require.Equal(t, http.StatusOK, hit("10.0.0.1"))
		require.Equal(t, http.StatusOK, hit("10.0.0.1"))
		require.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1"))

		// Buckets are per IP; a fresh client is unaffected.
		require.Equal(t, http.StatusOK, hit("10.0.0.2"))
	})

	t.Run("allow tracks separate buckets", func(t *testing.T) {
		t.Parallel()
		rl := NewRateLimiter(1, 1)
		require.True(t, rl.allow("a"))
		require.False(t, rl.allow("a"))
		require.True(t, rl.allow("b"))
	})
}
