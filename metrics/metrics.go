/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics holds the Prometheus collectors for routing.
// It is standalone so that apis can reference it without import cycles.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	ResultHit    = "hit"
	ResultMiss   = "miss"
)

// Metrics groups the routing collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	// Resolutions counts route computations (cache misses that ran).
	Resolutions *prometheus.CounterVec
	// CacheLookups counts cache lookups by result.
	CacheLookups *prometheus.CounterVec
	// Calls counts handler invocations.
	Calls *prometheus.CounterVec
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ovx",
			Name:      "resolutions_total",
			Help:      "Route computations by operation, kind and outcome.",
		}, []string{"op", "kind", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ovx",
			Name:      "cache_lookups_total",
			Help:      "Resolution cache lookups by operation and result.",
		}, []string{"op", "result"}),
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ovx",
			Name:      "calls_total",
			Help:      "Routed calls by operation and outcome.",
		}, []string{"op", "outcome"}),
	}
}

// Register registers the collectors on reg (or the default registerer if nil).
// When reg already holds collectors with the same descriptors, m adopts
// them so that every Metrics registered on reg feeds the same series.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, vec := range []**prometheus.CounterVec{&m.Resolutions, &m.CacheLookups, &m.Calls} {
		if err := reg.Register(*vec); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
			// Record into the collector reg already exposes.
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return err
			}
			*vec = existing
		}
	}
	return nil
}

// Resolved records one route computation.
func (m *Metrics) Resolved(op, kind string, err error) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(op, kind, outcome(err)).Inc()
}

// Lookup records one cache lookup.
func (m *Metrics) Lookup(op string, hit bool) {
	if m == nil {
		return
	}
	r := ResultMiss
	if hit {
		r = ResultHit
	}
	m.CacheLookups.WithLabelValues(op, r).Inc()
}

// Called records one routed call.
func (m *Metrics) Called(op string, err error) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}
