// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const metricsNamespace = "cfpq"

// Metrics collects chunk timings on a private registry.
type Metrics struct {
	reg          *prometheus.Registry
	chunkSeconds *prometheus.HistogramVec
	chunks       *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() (*Metrics, error) {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		chunkSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "chunk_solve_seconds",
				Help:      "Wall time of one Solve call per chunk.",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 12),
			},
			[]string{"algo", "graph", "grammar", "chunk_size"},
		),
		chunks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "chunks_solved_total",
				Help:      "Chunks solved.",
			},
			[]string{"algo", "graph", "grammar"},
		),
	}
	for _, c := range []prometheus.Collector{m.chunkSeconds, m.chunks} {
		if err := m.reg.Register(c); err != nil {
			return nil, fmt.Errorf("bench.NewMetrics: %w", err)
		}
	}

	return m, nil
}

// Observe adds every chunk time of rec.
func (m *Metrics) Observe(rec Record) {
	h := m.chunkSeconds.WithLabelValues(rec.Algo, rec.Graph, rec.Grammar, strconv.Itoa(rec.ChunkSize))
	for _, t := range rec.Times {
		h.Observe(t.Seconds())
	}
	m.chunks.WithLabelValues(rec.Algo, rec.Graph, rec.Grammar).Add(float64(len(rec.Times)))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// WriteText dumps all metric families in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	mfs, err := m.reg.Gather()
	if err != nil {
		return fmt.Errorf("bench.WriteText: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("bench.WriteText: %w", err)
		}
	}

	return nil
}
