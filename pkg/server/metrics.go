package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session results
const (
	ResultPlayed   = "played"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

type Metrics struct {
	SessionsActive  prometheus.Gauge
	SessionsTotal   *prometheus.CounterVec
	SessionDuration prometheus.Histogram
}

// NewMetrics registers the session metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "termtris_sessions_active",
			Help: "Number of ssh sessions currently playing.",
		}),
		SessionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "termtris_sessions_total",
			Help: "Number of ssh sessions by result.",
		}, []string{"result"}),
		SessionDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "termtris_session_duration_seconds",
			Help:    "How long played sessions lasted.",
			Buckets: []float64{10, 30, 60, 120, 300, 600, 1800},
		}),
	}
}
