package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// CacheControl lets the client reuse a response for maxAgeSeconds. Transcripts
// are personal, so shared caches are kept out. A non-positive age disables
// caching altogether.
func CacheControl(maxAgeSeconds int) gin.HandlerFunc {
	value := "no-store"
	if maxAgeSeconds > 0 {
		value = fmt.Sprintf("private, max-age=%d", maxAgeSeconds)
	}
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
