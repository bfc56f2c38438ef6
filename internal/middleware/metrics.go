package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/service"
)

// Metrics records request duration and count per route. Probe and scrape
// endpoints are excluded to keep the series meaningful.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	skip := map[string]struct{}{
		"/metrics": {},
		"/health":  {},
		"/ready":   {},
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
