package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest unwraps gzip request bodies before they reach the
// handlers. Field agents on metered connections upload compressed payloads.
func DecompressRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		compressed := c.Request.Body
		reader, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer compressed.Close()

		c.Request.Body = io.NopCloser(reader)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
