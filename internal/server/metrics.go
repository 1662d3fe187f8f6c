package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/lotplan/pkg/observability"
)

// Metrics counts layout edits and publications. It implements the layout and
// store hooks from package observability so it can be registered globally.
type Metrics struct {
	registry *prometheus.Registry

	Commits       *prometheus.CounterVec
	Rejects       *prometheus.CounterVec
	Spots         prometheus.Gauge
	Publications  *prometheus.CounterVec
	SaveDuration  *prometheus.HistogramVec
	RequestsTotal *prometheus.CounterVec
}

// NewMetrics creates the collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lotplan_layout_commits_total",
			Help: "Layout mutations that were applied",
		}, []string{"op"}),
		Rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lotplan_layout_rejects_total",
			Help: "Layout mutations that were refused, by error code",
		}, []string{"op", "code"}),
		Spots: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lotplan_layout_spots",
			Help: "Spots currently committed to the layout",
		}),
		Publications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lotplan_publications_total",
			Help: "Publication writes by backend and outcome",
		}, []string{"backend", "status"}),
		SaveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lotplan_publication_save_duration_ms",
			Help:    "Publication write duration in milliseconds",
			Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
		}, []string{"backend"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lotplan_http_requests_total",
			Help: "HTTP requests by route and status class",
		}, []string{"route", "status"}),
	}
	m.registry.MustRegister(
		m.Commits, m.Rejects, m.Spots, m.Publications, m.SaveDuration, m.RequestsTotal,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OnCommit(op string, _ int) {
	m.Commits.WithLabelValues(op).Inc()
}

func (m *Metrics) OnReject(op string, _ int, code string) {
	m.Rejects.WithLabelValues(op, code).Inc()
}

func (m *Metrics) OnSave(_ context.Context, backend string, _ int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Publications.WithLabelValues(backend, status).Inc()
	m.SaveDuration.WithLabelValues(backend).Observe(float64(d.Milliseconds()))
}

var (
	_ observability.LayoutHooks = (*Metrics)(nil)
	_ observability.StoreHooks  = (*Metrics)(nil)
)
