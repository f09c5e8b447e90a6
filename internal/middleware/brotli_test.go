package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func brotliRig(handler gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Brotli())
	r.GET("/body", handler)
	return r
}

func TestBrotli(t *testing.T) {
	t.Run("large body is compressed and round-trips", func(t *testing.T) {
		chunk := strings.Repeat("catalog entry ", 128)
		tail := "uneven tail"
		r := brotliRig(func(c *gin.Context) {
			c.Status(http.StatusOK)
			c.Writer.WriteString(chunk)
			c.Writer.WriteString(tail)
		})

		req := httptest.NewRequest(http.MethodGet, "/body", nil)
		req.Header.Set("Accept-Encoding", "gzip, br")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, "br", w.Header().Get("Content-Encoding"))

		decoded, err := io.ReadAll(brotli.NewReader(w.Body))
		require.NoError(t, err)
		require.Equal(t, chunk+tail, string(decoded))
	})

	t.Run("short body passes through uncompressed", func(t *testing.T) {
		r := brotliRig(func(c *gin.Context) {
			c.String(http.StatusOK, "tiny")
		})

		req := httptest.NewRequest(http.MethodGet, "/body", nil)
		req.Header.Set("Accept-Encoding", "br")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Empty(t, w.Header().Get("Content-Encoding"))
		require.Equal(t, "tiny", w.Body.String())
	})

	t.Run("client without br support gets plain bytes", func(t *testing.T) {
		chunk := strings.Repeat("catalog entry ", 128)
		r := brotliRig(func(c *gin.Context) {
			c.String(http.StatusOK, chunk)
		})

		req := httptest.NewRequest(http.MethodGet, "/body", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Empty(t, w.Header().Get("Content-Encoding"))
		require.Equal(t, chunk, w.Body.String())
	})
}
