package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/internal/service"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

// Ping calls f.
func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// MetricsHandler exposes the observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	deps    map[string]Pinger
}

// NewMetricsHandler constructs a metrics handler. deps maps a dependency
// name to its ping check; nil entries are skipped.
func NewMetricsHandler(metrics *service.MetricsService, deps map[string]Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, deps: deps}
}

// Prometheus serves the Prometheus scrape endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health is the liveness probe.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready pings every registered dependency and reports per-dependency state.
func (h *MetricsHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{}
	for name, dep := range h.deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": checks})
}
