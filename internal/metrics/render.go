package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector holds the render engine's Prometheus metrics. Each collector
// owns its registry so tests and sessions never collide on registration.
type Collector struct {
	registry *prometheus.Registry

	// Passes counts render passes by plan kind ("full", "restyle", ...).
	Passes *prometheus.CounterVec
	// ElementOps counts surface side effects by family and operation.
	ElementOps *prometheus.CounterVec
	// PassDuration observes how long each pass took, by plan kind.
	PassDuration *prometheus.HistogramVec
	// Edges is the number of coupling edges drawn after the last pass.
	Edges prometheus.Gauge
	// SkippedPasses counts passes skipped because the surface was not ready.
	SkippedPasses prometheus.Counter
}

// NewCollector creates a collector whose metric names carry namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	passes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_passes_total",
			Help:      "Total number of render passes by plan",
		},
		[]string{"plan"},
	)

	elementOps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "element_ops_total",
			Help:      "Total number of element side effects by family and operation",
		},
		[]string{"family", "op"},
	)

	passDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_pass_duration_seconds",
			Help:      "Render pass duration in seconds",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"plan"},
	)

	edges := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "coupling_edges",
			Help:      "Number of coupling edges currently drawn",
		},
	)

	skipped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_passes_skipped_total",
			Help:      "Total number of passes skipped because the surface was not ready",
		},
	)

	registry.MustRegister(passes, elementOps, passDuration, edges, skipped)

	return &Collector{
		registry:      registry,
		Passes:        passes,
		ElementOps:    elementOps,
		PassDuration:  passDuration,
		Edges:         edges,
		SkippedPasses: skipped,
	}
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordPass records one completed pass.
func (c *Collector) RecordPass(plan string, d time.Duration) {
	c.Passes.WithLabelValues(plan).Inc()
	c.PassDuration.WithLabelValues(plan).Observe(d.Seconds())
}

// RecordOps adds the enter/update/exit counts of one family's join.
func (c *Collector) RecordOps(family string, entered, updated, exited int) {
	c.ElementOps.WithLabelValues(family, "enter").Add(float64(entered))
	c.ElementOps.WithLabelValues(family, "update").Add(float64(updated))
	c.ElementOps.WithLabelValues(family, "exit").Add(float64(exited))
}

// WriteText writes every gathered metric in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
