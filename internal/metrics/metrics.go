package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// AssetsTotal is the current number of assets in inventory.
	AssetsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "inventory_assets_total",
			Help: "Current number of assets in inventory",
		},
	)

	// AssetsByStatus is the current number of assets per lifecycle status.
	AssetsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventory_assets",
			Help: "Current number of assets by status",
		},
		[]string{"status"},
	)
)

var numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, AssetsTotal, AssetsByStatus)
}

// NormalizePath reduces label cardinality by replacing numeric path segments
// with {id}, e.g. /api/assets/123 -> /api/assets/{id}.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for one HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// SetInventory refreshes the inventory gauges from a stats snapshot. Statuses
// absent from the snapshot are reset to zero so retired buckets do not linger.
func SetInventory(total int, byStatus map[string]int) {
	AssetsTotal.Set(float64(total))
	AssetsByStatus.Reset()
	for status, count := range byStatus {
		AssetsByStatus.WithLabelValues(status).Set(float64(count))
	}
}
