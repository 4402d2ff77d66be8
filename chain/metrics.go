// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type chainMetrics struct {
	txsRejected  prometheus.Counter
	txsSucceeded prometheus.Counter
	txsFailed    prometheus.Counter

	executeLatency prometheus.Histogram

	stateChanges prometheus.Counter
	height       prometheus.Gauge
}

func newMetrics(r prometheus.Registerer) (*chainMetrics, error) {
	m := &chainMetrics{
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_rejected",
			Help:      "number of transactions rejected before execution",
		}),
		txsSucceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_succeeded",
			Help:      "number of transactions executed successfully",
		}),
		txsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_failed",
			Help:      "number of transactions whose action returned an error",
		}),
		executeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chain",
			Name:      "execute_latency",
			Help:      "time spent executing and committing a transaction (s)",
			Buckets:   prometheus.DefBuckets,
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of keys written to the database",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chain",
			Name:      "height",
			Help:      "number of executed transactions",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.txsRejected),
		r.Register(m.txsSucceeded),
		r.Register(m.txsFailed),
		r.Register(m.executeLatency),
		r.Register(m.stateChanges),
		r.Register(m.height),
	)
	return m, errs.Err
}
