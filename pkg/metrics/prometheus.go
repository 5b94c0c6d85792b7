package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)
	imageUploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Image uploads to object storage by outcome.",
		},
		[]string{"backend", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, imageUploadsTotal)
}

// RecordRequest records one served HTTP request.
func RecordRequest(method, route string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func RecordUpload(backend string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	imageUploadsTotal.WithLabelValues(backend, outcome).Inc()
}

func classifyStatus(statusCode int) string {
	if statusCode < 100 || statusCode >= 600 {
		return "unknown"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}

func Handler() http.Handler {
	return promhttp.Handler()
}
