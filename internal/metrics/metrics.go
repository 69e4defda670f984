// Package metrics exposes Prometheus instrumentation for the terminal.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BillsSaved counts successful checkouts.
	BillsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_bills_saved_total",
		Help: "Number of bills committed to the ledger.",
	})

	// BillsDeleted counts bills removed from the ledger.
	BillsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_bills_deleted_total",
		Help: "Number of bills deleted from the ledger.",
	})

	// CheckoutRevenue accumulates the total amount of saved bills.
	CheckoutRevenue = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_checkout_revenue_total",
		Help: "Sum of saved bill totals.",
	})

	// CatalogMutations counts room and food catalog changes by entity
	// and operation.
	CatalogMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_catalog_mutations_total",
		Help: "Catalog mutations by entity and operation.",
	}, []string{"entity", "op"})

	// RequestDuration observes HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pos_http_request_duration_seconds",
		Help:    "HTTP request duration by method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// Handler serves the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
