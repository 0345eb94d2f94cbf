package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg             *prometheus.Registry
	OrdersProcessed prometheus.Counter
	OrdersExcluded  prometheus.Counter
	EventsEmitted   *prometheus.CounterVec
	CatalogHits     prometheus.Counter
	CatalogMisses   prometheus.Counter
	PublishFailures prometheus.Counter
	SyncDuration    prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	processed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersync_orders_processed_total"})
	excluded := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersync_test_orders_total"})
	emitted := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ordersync_events_emitted_total"}, []string{"event"})
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersync_catalog_hits_total"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersync_catalog_misses_total"})
	publishFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordersync_publish_failures_total"})
	syncDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ordersync_sync_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(processed, excluded, emitted, hits, misses, publishFailures, syncDuration)
	return &Registry{
		reg:             r,
		OrdersProcessed: processed,
		OrdersExcluded:  excluded,
		EventsEmitted:   emitted,
		CatalogHits:     hits,
		CatalogMisses:   misses,
		PublishFailures: publishFailures,
		SyncDuration:    syncDuration,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
