// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics exposes the Prometheus collectors the replica core
// reports to (ambient concern A2). The core packages (leader, network,
// replica) do not import it; the cmd/replica demo builds a *Metrics and
// calls its recording methods.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the consensus core reports to: view
// duration, vote counts, certificate formation, and timeouts.
type Metrics struct {
	Registry prometheus.Registerer

	ViewDuration      prometheus.Histogram
	VotesReceived     *prometheus.CounterVec
	CertificatesMade  *prometheus.CounterVec
	ViewTimeouts      prometheus.Counter
	CurrentView       prometheus.Gauge
	MempoolSize       prometheus.Gauge
}

// NewMetrics builds and registers every collector against reg. namespace
// is the Prometheus metric-name prefix, e.g. "daseq".
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Registry: reg,
		ViewDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "replica",
			Name:      "view_duration_seconds",
			Help:      "Wall-clock time spent in a single consensus view.",
			Buckets:   prometheus.DefBuckets,
		}),
		VotesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "replica",
			Name:      "votes_received_total",
			Help:      "Votes received, partitioned by kind and validity.",
		}, []string{"kind", "valid"}),
		CertificatesMade: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "replica",
			Name:      "certificates_formed_total",
			Help:      "Certificates formed by an accumulator crossing threshold, partitioned by kind.",
		}, []string{"kind"}),
		ViewTimeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "replica",
			Name:      "view_timeouts_total",
			Help:      "Views that ended via NextViewInterrupt rather than forming a certificate.",
		}),
		CurrentView: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "replica",
			Name:      "current_view",
			Help:      "The highest view number this replica is actively running.",
		}),
		MempoolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "replica",
			Name:      "mempool_size",
			Help:      "Number of transactions currently pending in the mempool.",
		}),
	}

	collectors := []prometheus.Collector{
		m.ViewDuration, m.VotesReceived, m.CertificatesMade,
		m.ViewTimeouts, m.CurrentView, m.MempoolSize,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordVote increments VotesReceived for kind, tagged by whether the vote
// passed Exchange.IsValidVote.
func (m *Metrics) RecordVote(kind string, valid bool) {
	m.VotesReceived.WithLabelValues(kind, boolLabel(valid)).Inc()
}

// RecordCertificate increments CertificatesMade for kind.
func (m *Metrics) RecordCertificate(kind string) {
	m.CertificatesMade.WithLabelValues(kind).Inc()
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
