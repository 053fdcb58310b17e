package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global collector instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the engine
type Collector struct {
	registry *prometheus.Registry

	// Draw metrics
	DrawsTotal     *prometheus.CounterVec
	DrawDuration   prometheus.Histogram
	SelectionScore prometheus.Histogram

	// Recency store metrics
	StoreOperations *prometheus.CounterVec
	StoreDuration   *prometheus.HistogramVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Singleton avoids duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	drawsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draws_total",
			Help:      "Total number of daily draws by outcome",
		},
		[]string{"outcome"},
	)

	drawDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "draw_duration_seconds",
			Help:      "Daily draw duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	selectionScore := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selection_score",
			Help:      "Final score of the winning card",
			Buckets:   prometheus.LinearBuckets(0, 10, 10),
		},
	)

	storeOperations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recency_store_operations_total",
			Help:      "Total recency store operations by name and status",
		},
		[]string{"operation", "status"},
	)

	storeDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recency_store_duration_seconds",
			Help:      "Recency store operation duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	registry.MustRegister(drawsTotal, drawDuration, selectionScore, storeOperations, storeDuration)

	globalCollector = &Collector{
		registry:        registry,
		DrawsTotal:      drawsTotal,
		DrawDuration:    drawDuration,
		SelectionScore:  selectionScore,
		StoreOperations: storeOperations,
		StoreDuration:   storeDuration,
	}
	return globalCollector
}

// Registry returns the collector's registry for exposition
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveDraw records one completed draw
func (c *Collector) ObserveDraw(outcome string, score float64, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.DrawsTotal.WithLabelValues(outcome).Inc()
	c.DrawDuration.Observe(elapsed.Seconds())
	c.SelectionScore.Observe(score)
}

// ObserveStoreOperation records one recency store call
func (c *Collector) ObserveStoreOperation(operation, status string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.StoreOperations.WithLabelValues(operation, status).Inc()
	c.StoreDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
