package main

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry *prometheus.Registry

	lines   prometheus.Counter
	skipped prometheus.Counter
	kept    prometheus.Gauge
}

func newMetrics(mode string) *metrics {
	labels := prometheus.Labels{"mode": mode}
	m := &metrics{
		registry: prometheus.NewRegistry(),
		lines: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "topk_lines_total",
			Help:        "Input lines read.",
			ConstLabels: labels,
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "topk_lines_skipped_total",
			Help:        "Input lines skipped because they could not be parsed.",
			ConstLabels: labels,
		}),
		kept: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "topk_items_kept",
			Help:        "Items in the final ranking.",
			ConstLabels: labels,
		}),
	}
	m.registry.MustRegister(m.lines, m.skipped, m.kept)
	return m
}

// writeTextfile writes the metrics in the node_exporter textfile format.
func (m *metrics) writeTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
