// Package metrics exposes store sizes and recompute counts as Prometheus
// metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pharmadesk"

// Collector records view recomputations. It implements store.Observer.
type Collector struct {
	registry   *prometheus.Registry
	entities   *prometheus.GaugeVec
	visible    *prometheus.GaugeVec
	recomputes *prometheus.CounterVec
}

// New returns a Collector registered on its own registry together with the
// Go runtime and process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "entities",
			Help:      "Number of entities held by a store.",
		}, []string{"store"}),
		visible: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "visible",
			Help:      "Number of entities in a store's filtered view.",
		}, []string{"store"}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "recomputes_total",
			Help:      "Number of view recomputations per store.",
		}, []string{"store"}),
	}
	c.registry.MustRegister(
		c.entities,
		c.visible,
		c.recomputes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Recomputed updates the gauges and counter for store.
func (c *Collector) Recomputed(store string, total, visible int) {
	c.entities.WithLabelValues(store).Set(float64(total))
	c.visible.WithLabelValues(store).Set(float64(visible))
	c.recomputes.WithLabelValues(store).Inc()
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
