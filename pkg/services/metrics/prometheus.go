package metrics

import (
	"net/http"

	"github.com/nspcc-dev/jsarray/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// PrometheusService https://prometheus.io/docs/guides/go-application.
type PrometheusService Service

// NewPrometheusService creates a new service for gathering prometheus metrics
// from g, the default gatherer is used if g is nil.
func NewPrometheusService(cfg config.BasicService, g prometheus.Gatherer, log *zap.Logger) *Service {
	if log == nil {
		return nil
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}

	handler := promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	addrs := cfg.GetAddresses()
	srvs := make([]*http.Server, len(addrs))
	for i, addr := range addrs {
		srvs[i] = &http.Server{
			Addr:    addr,
			Handler: handler, // share metrics between multiple prometheus handlers
		}
	}
	return NewService("Prometheus", srvs, cfg, log)
}
