package prometheus

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler exposes one registry in the Prometheus text format.
type Handler struct {
	registry *prometheus.Registry
}

// New registers the Go runtime and process collectors on registry.
func New(registry *prometheus.Registry) *Handler {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &Handler{registry: registry}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health/metrics", h.Handler())
}

func (h *Handler) Handler() gin.HandlerFunc {
	ph := promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		ph.ServeHTTP(c.Writer, c.Request)
	}
}
