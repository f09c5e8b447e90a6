package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// brotliMinLength is the smallest body worth compressing. Short error
// envelopes pass through untouched.
const brotliMinLength = 1024

// Brotli compresses responses for clients that advertise br support. Bodies
// under brotliMinLength are sent as-is.
func Brotli() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		bw := &brotliWriter{
			ResponseWriter: c.Writer,
			writer:         brotli.NewWriterLevel(c.Writer, brotli.DefaultCompression),
		}
		defer bw.close(c)

		c.Writer = bw
		c.Next()
	}
}

type brotliWriter struct {
	gin.ResponseWriter
	writer     *brotli.Writer
	buf        []byte
	once       sync.Once
	compressed bool
}

func (bw *brotliWriter) Write(data []byte) (int, error) {
	bw.buf = append(bw.buf, data...)

	if len(bw.buf) >= brotliMinLength {
		bw.once.Do(func() {
			bw.compressed = true
			bw.ResponseWriter.Header().Set("Content-Encoding", "br")
			bw.ResponseWriter.Header().Del("Content-Length")
		})
		n, err := bw.writer.Write(bw.buf)
		bw.buf = bw.buf[:0]
		return n, err
	}

	return len(data), nil
}

func (bw *brotliWriter) WriteString(s string) (int, error) {
	return bw.Write([]byte(s))
}

// close drains anything still buffered. Once the stream has switched to
// brotli the tail must go through the compressor too; a body that never
// crossed the threshold is written uncompressed.
func (bw *brotliWriter) close(c *gin.Context) {
	if len(bw.buf) > 0 {
		var err error
		if bw.compressed {
			_, err = bw.writer.Write(bw.buf)
		} else {
			_, err = bw.ResponseWriter.Write(bw.buf)
		}
		if err != nil {
			_ = c.Error(err)
		}
		bw.buf = nil
	}
	if bw.compressed {
		bw.writer.Close()
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		if strings.TrimSpace(strings.ToLower(enc)) == "br" {
			return true
		}
	}
	return false
}
