// Package metrics exposes Prometheus instruments for the protocol server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	DeleteConfigTotal    *prometheus.CounterVec
	DeleteConfigDuration *prometheus.HistogramVec
	SessionsOpen         prometheus.Gauge
}

// New registers the server instruments on a private registry together with
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DeleteConfigTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "netconfd_delete_config_total",
			Help: "Total number of delete-config requests by target and result",
		}, []string{"target", "result"}),
		DeleteConfigDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "netconfd_delete_config_duration_seconds",
			Help:    "Duration of delete-config requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"target"}),
		SessionsOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "netconfd_sessions_open",
			Help: "Current number of open protocol sessions",
		}),
	}
}

func (m *Metrics) ObserveDeleteConfig(target, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DeleteConfigTotal.WithLabelValues(target, result).Inc()
	m.DeleteConfigDuration.WithLabelValues(target).Observe(elapsed.Seconds())
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.SessionsOpen.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.SessionsOpen.Dec()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
