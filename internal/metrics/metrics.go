package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments used for monitoring the directory.
// Request counts/durations come from the HTTP middleware; the rest are
// incremented at the point of work (QR encoding, photo writes).
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	QREncodes       prometheus.Counter
	PhotoBytes      prometheus.Counter
	Employees       prometheus.Gauge
}

// New creates a Metrics instance registered with the provided Registerer.
// Taking the registerer as a parameter (rather than using the global default)
// keeps tests free to register against their own throwaway registry.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "directory_http_requests_total",
			Help: "Total HTTP requests handled, by method and status code.",
		}, []string{"method", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "directory_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		QREncodes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "directory_qr_encodes_total",
			Help: "Total QR images encoded (one per card render; nothing is cached).",
		}),
		PhotoBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "directory_photo_bytes_written_total",
			Help: "Total bytes of photo uploads written to the photo store.",
		}),
		Employees: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "directory_employees",
			Help: "Current number of employee records.",
		}),
	}
}
