package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// gzipBody closes both the gzip reader and the underlying request body.
type gzipBody struct {
	*gzip.Reader
	underlying io.Closer
}

func (b gzipBody) Close() error {
	if err := b.Reader.Close(); err != nil {
		_ = b.underlying.Close()
		return err
	}
	return b.underlying.Close()
}

// DecompressRequest swaps a gzip encoded request body for its decompressed
// form so downstream handlers read plain JSON. A body that does not parse as
// gzip despite the header is rejected outright.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := c.GetHeader("Content-Encoding")
		if !strings.Contains(encoding, "gzip") {
			c.Next()
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		c.Request.Body = gzipBody{Reader: reader, underlying: c.Request.Body}
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
