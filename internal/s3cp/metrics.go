//
// Copyright (C) 2024 Dmitry Kolesnikov
//
// This file may be modified and distributed under the terms
// of the MIT license.  See the LICENSE file for details.
// https://github.com/fogfish/s3copy
//

package s3cp

import (
	"github.com/fogfish/s3copy"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics of copy operations. Nil value is valid and records nothing.
type Metrics struct {
	outcomes *prometheus.CounterVec
	skipped  prometheus.Counter
	faults   prometheus.Counter
}

// NewMetrics creates counters and registers them
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "s3copy",
				Name:      "outcomes_total",
				Help:      "Number of completed copy operations by outcome.",
			},
			[]string{"outcome"},
		),
		skipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "s3copy",
				Name:      "skipped_total",
				Help:      "Number of objects found already copied at destination.",
			},
		),
		faults: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "s3copy",
				Name:      "faults_total",
				Help:      "Number of copy operations aborted by fault.",
			},
		),
	}

	for _, c := range []prometheus.Collector{m.outcomes, m.skipped, m.faults} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Outcome counter
func (m *Metrics) Outcome(status s3copy.Outcome) prometheus.Counter {
	return m.outcomes.WithLabelValues(status.String())
}

// Skipped counter
func (m *Metrics) Skipped() prometheus.Counter { return m.skipped }

// Faults counter
func (m *Metrics) Faults() prometheus.Counter { return m.faults }

func (m *Metrics) outcome(status s3copy.Outcome) {
	if m != nil {
		m.Outcome(status).Inc()
	}
}

func (m *Metrics) skip() {
	if m != nil {
		m.skipped.Inc()
	}
}

func (m *Metrics) fault() {
	if m != nil {
		m.faults.Inc()
	}
}
