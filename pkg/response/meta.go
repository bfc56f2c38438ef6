package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	metaKey      = "response_meta"
	metaStartKey = "response_meta_start"
)

// WithMeta initialises per-request metadata for the response envelope.
// Processing time is measured from here to the moment the body is written.
func WithMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(metaStartKey, time.Now())
		c.Set(metaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetMeta records an extra metadata entry on the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	if raw, exists := c.Get(metaKey); exists {
		if meta, ok := raw.(map[string]interface{}); ok {
			meta[key] = value
		}
	}
}

func metaFor(c *gin.Context) map[string]interface{} {
	raw, exists := c.Get(metaKey)
	if !exists {
		return nil
	}
	meta, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	if rawStart, ok := c.Get(metaStartKey); ok {
		if start, ok := rawStart.(time.Time); ok {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
	return meta
}
