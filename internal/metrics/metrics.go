// Package metrics exposes Prometheus collectors for the HTTP surface and
// for page-link pagination.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the service-owned registry served on /metrics.
var Registry = prometheus.NewRegistry()

var (
	// HTTPRequestsTotal counts handled requests.
	// Labels: method, route (gin full path), status
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subnets_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks handler latency in seconds.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subnets_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// PagesServed counts listing pages by resource and how they were requested.
	// Labels: resource (subnet), mode (first, link)
	PagesServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subnets_pages_served_total",
			Help: "Total number of listing pages served",
		},
		[]string{"resource", "mode"},
	)

	// PageLinksIssued counts page-link tokens written to the link store.
	PageLinksIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subnets_page_links_issued_total",
			Help: "Total number of page links issued",
		},
		[]string{"resource"},
	)

	// PageLinksExpired counts continuation requests for unknown or expired links.
	PageLinksExpired = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subnets_page_links_expired_total",
			Help: "Total number of page link lookups that found no live cursor",
		},
		[]string{"resource"},
	)
)

// Pagination modes.
const (
	ModeFirst = "first"
	ModeLink  = "link"
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	Registry.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)

	Registry.MustRegister(
		PagesServed,
		PageLinksIssued,
		PageLinksExpired,
	)
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
