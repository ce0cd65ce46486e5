// Package metrics exports index tuple statistics to Prometheus.
package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ssargent/indextuple/pkg/itup"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the operation metrics for tuple encoding and decoding.
type Metrics struct {
	operationsTotal *prometheus.CounterVec
	tupleSizeBytes  *prometheus.HistogramVec
}

// NewMetrics creates the operation metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itup_operations_total",
				Help: "Total number of index tuple operations",
			},
			[]string{"schema", "operation", "status"},
		),
		tupleSizeBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "itup_tuple_size_bytes",
				Help:    "Size of index tuples produced",
				Buckets: prometheus.ExponentialBuckets(8, 2, 11),
			},
			[]string{"schema", "operation"},
		),
	}
}

// RecordOperation counts one operation. Operations that produce a tuple
// also record its size.
func (m *Metrics) RecordOperation(schema, operation string, t itup.Tuple, err error) {
	status := statusSuccess
	if err != nil {
		status = statusError
	}
	m.operationsTotal.WithLabelValues(schema, operation, status).Inc()
	if err == nil && t != nil {
		m.tupleSizeBytes.WithLabelValues(schema, operation).Observe(float64(len(t)))
	}
}

// SchemaCollector reports the offset cache and accessor counters of
// tracked schemas.
type SchemaCollector struct {
	mu      sync.RWMutex
	schemas map[string]*itup.Schema

	cacheHits  *prometheus.Desc
	nullHits   *prometheus.Desc
	slowWalks  *prometheus.Desc
	cacheFills *prometheus.Desc
	knownSlots *prometheus.Desc
}

// NewSchemaCollector returns a collector with no schemas tracked.
func NewSchemaCollector() *SchemaCollector {
	labels := []string{"schema"}
	return &SchemaCollector{
		schemas: make(map[string]*itup.Schema),
		cacheHits: prometheus.NewDesc("itup_getattr_cache_hits_total",
			"Attribute lookups answered from the offset cache", labels, nil),
		nullHits: prometheus.NewDesc("itup_getattr_null_hits_total",
			"Attribute lookups answered from the null bitmap", labels, nil),
		slowWalks: prometheus.NewDesc("itup_getattr_slow_walks_total",
			"Attribute lookups that walked preceding attributes", labels, nil),
		cacheFills: prometheus.NewDesc("itup_offset_cache_fills_total",
			"Offset cache slots populated", labels, nil),
		knownSlots: prometheus.NewDesc("itup_offset_cache_known",
			"Attributes whose offset is currently cached", labels, nil),
	}
}

// Track adds a schema under name, replacing any schema tracked there.
func (c *SchemaCollector) Track(name string, s *itup.Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schemas[name] = s
}

// Describe implements prometheus.Collector.
func (c *SchemaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cacheHits
	ch <- c.nullHits
	ch <- c.slowWalks
	ch <- c.cacheFills
	ch <- c.knownSlots
}

// Collect implements prometheus.Collector.
func (c *SchemaCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.schemas))
	for name := range c.schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := c.schemas[name]
		st := s.Stats()
		ch <- prometheus.MustNewConstMetric(c.cacheHits, prometheus.CounterValue, float64(st.CacheHits), name)
		ch <- prometheus.MustNewConstMetric(c.nullHits, prometheus.CounterValue, float64(st.NullHits), name)
		ch <- prometheus.MustNewConstMetric(c.slowWalks, prometheus.CounterValue, float64(st.SlowWalks), name)
		ch <- prometheus.MustNewConstMetric(c.cacheFills, prometheus.CounterValue, float64(st.CacheFills), name)

		known := 0
		for attnum := 1; attnum <= s.NumAttrs(); attnum++ {
			if _, ok := s.CachedOffset(attnum); ok {
				known++
			}
		}
		ch <- prometheus.MustNewConstMetric(c.knownSlots, prometheus.GaugeValue, float64(known), name)
	}
}
