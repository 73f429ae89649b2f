package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip request bodies so handlers always read
// plain JSON. Bodies that claim gzip but fail to decode get a 400.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		gz, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer gz.Close()
		defer compressed.Close()

		// Downstream must not re-decode what we already unwrapped.
		c.Request.Header.Del("Content-Encoding")
		c.Request.Body = io.NopCloser(gz)
		c.Next()
	}
}
