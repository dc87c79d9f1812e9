// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txpool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// poolMetrics collects prometheus instrumentation for a single Pool.
// Each Pool registers its own instance against the registry passed to
// New so multiple pools in one process (e.g. one per shard) don't
// collide on metric identity.
type poolMetrics struct {
	size       prometheus.Gauge
	memUsage   prometheus.Gauge
	imported   prometheus.Counter
	replaced   prometheus.Counter
	rejected   *prometheus.CounterVec
	dropped    prometheus.Counter
	cancelled  prometheus.Counter
	invalidated prometheus.Counter
	mined      prometheus.Counter
}

func newPoolMetrics(registry prometheus.Registerer, namespace string) *poolMetrics {
	m := &poolMetrics{
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "size",
			Help: "Number of transactions currently pooled.",
		}),
		memUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "mem_usage",
			Help: "Sum of MemUsage across currently pooled transactions.",
		}),
		imported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "imported_total",
			Help: "Transactions admitted as a new entry.",
		}),
		replaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "replaced_total",
			Help: "Transactions admitted by replacing an existing entry.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "rejected_total",
			Help: "Transactions refused admission, by reason.",
		}, []string{"reason"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "dropped_total",
			Help: "Transactions evicted to make room for an admission elsewhere.",
		}),
		cancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "cancelled_total",
			Help: "Transactions removed by explicit host request.",
		}),
		invalidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "invalidated_total",
			Help: "Transactions removed by an explicit Remove marked invalid.",
		}),
		mined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "txpool", Name: "mined_total",
			Help: "Transactions removed by Cull as mined.",
		}),
	}
	if registry != nil {
		registry.MustRegister(m.size, m.memUsage, m.imported, m.replaced, m.rejected,
			m.dropped, m.cancelled, m.invalidated, m.mined)
	}
	return m
}
