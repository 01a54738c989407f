// Package metrics provides Prometheus metrics for the record store and the
// location resolver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricRecordsAdded    = "winemap_records_added_total"
	MetricRecordsDeleted  = "winemap_records_deleted_total"
	MetricAddFailures     = "winemap_add_failures_total"
	MetricCollectionSize  = "winemap_collection_records"
	MetricResolveRequests = "winemap_location_resolutions_total"
)

// Metrics contains the collectors. All methods are safe for concurrent use
// and are no-ops on a nil receiver.
type Metrics struct {
	added       prometheus.Counter
	deleted     prometheus.Counter
	addFailures *prometheus.CounterVec
	size        prometheus.Gauge
	resolutions *prometheus.CounterVec
}

// New creates the collectors. They are not registered; call Register.
func New() *Metrics {
	return &Metrics{
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsAdded,
			Help: "Total number of records appended to the collection",
		}),
		deleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRecordsDeleted,
			Help: "Total number of records deleted from the collection",
		}),
		addFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAddFailures,
			Help: "Total number of rejected adds by reason",
		}, []string{"reason"}),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricCollectionSize,
			Help: "Number of records in the committed collection",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricResolveRequests,
			Help: "Total number of location resolutions by source",
		}, []string{"source"}),
	}
}

// Register registers all collectors with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.added, m.deleted, m.addFailures, m.size, m.resolutions} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAdd(size int) {
	if m == nil {
		return
	}
	m.added.Inc()
	m.size.Set(float64(size))
}

func (m *Metrics) ObserveAddFailure(reason string) {
	if m == nil {
		return
	}
	m.addFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveDelete(size int) {
	if m == nil {
		return
	}
	m.deleted.Inc()
	m.size.Set(float64(size))
}

func (m *Metrics) SetSize(size int) {
	if m == nil {
		return
	}
	m.size.Set(float64(size))
}

func (m *Metrics) ObserveResolve(source string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source).Inc()
}
