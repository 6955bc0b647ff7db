// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics interface used by the service layer.
type Recorder interface {
	RecordListingCreated()
	RecordListingDeleted()
	RecordUploadAccepted()
	RecordUploadRejected()
	RecordBlobCleanupFailure()
}

// Collector is the Prometheus-backed Recorder implementation.
type Collector struct {
	listingsCreated     prometheus.Counter
	listingsDeleted     prometheus.Counter
	uploadsAccepted     prometheus.Counter
	uploadsRejected     prometheus.Counter
	blobCleanupFailures prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		listingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carmarket_listings_created_total",
			Help: "Number of listings created.",
		}),
		listingsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carmarket_listings_deleted_total",
			Help: "Number of listings deleted.",
		}),
		uploadsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carmarket_image_uploads_total",
			Help: "Number of image uploads accepted.",
		}),
		uploadsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carmarket_image_uploads_rejected_total",
			Help: "Number of image uploads rejected at validation.",
		}),
		blobCleanupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carmarket_blob_cleanup_failures_total",
			Help: "Number of blob deletions that failed during listing cleanup.",
		}),
	}

	reg.MustRegister(
		c.listingsCreated,
		c.listingsDeleted,
		c.uploadsAccepted,
		c.uploadsRejected,
		c.blobCleanupFailures,
	)

	return c
}

// RecordListingCreated increments the created-listings counter.
func (c *Collector) RecordListingCreated() { c.listingsCreated.Inc() }

// RecordListingDeleted increments the deleted-listings counter.
func (c *Collector) RecordListingDeleted() { c.listingsDeleted.Inc() }

// RecordUploadAccepted increments the accepted-uploads counter.
func (c *Collector) RecordUploadAccepted() { c.uploadsAccepted.Inc() }

// RecordUploadRejected increments the rejected-uploads counter.
func (c *Collector) RecordUploadRejected() { c.uploadsRejected.Inc() }

// RecordBlobCleanupFailure increments the cleanup-failure counter.
func (c *Collector) RecordBlobCleanupFailure() { c.blobCleanupFailures.Inc() }

// Noop is a Recorder that records nothing.
type Noop struct{}

func (Noop) RecordListingCreated() {}
func (Noop) RecordListingDeleted() {}
func (Noop) RecordUploadAccepted() {}
func (Noop) RecordUploadRejected() {}
func (Noop) RecordBlobCleanupFailure() {}

// SetupMetricsRoute returns the handler serving the metrics endpoint.
func SetupMetricsRoute(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
