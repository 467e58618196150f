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

package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/ovx/metrics"
)

func TestRegister_TwiceIsNotAnError(t *testing.T) {
	m := metrics.New()
	reg := prometheus.NewRegistry()

	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Register(reg))
}

func TestRegister_SecondInstanceSharesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, second := metrics.New(), metrics.New()

	require.NoError(t, first.Register(reg))
	require.NoError(t, second.Register(reg))
	assert.Same(t, first.Calls, second.Calls)

	second.Called("op", nil)
	second.Lookup("op", true)

	n, err := testutil.GatherAndCount(reg, "ovx_calls_total", "ovx_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1.0, testutil.ToFloat64(first.Calls.WithLabelValues("op", metrics.OutcomeOK)))
}

func TestCounters(t *testing.T) {
	m := metrics.New()

	m.Resolved("op", "permuted", nil)
	m.Resolved("op", "permuted", errors.New("boom"))
	m.Lookup("op", true)
	m.Lookup("op", false)
	m.Lookup("op", false)
	m.Called("op", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("op", "permuted", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Resolutions.WithLabelValues("op", "permuted", metrics.OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("op", metrics.ResultHit)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("op", metrics.ResultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("op", metrics.OutcomeOK)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.Resolved("op", "overloaded", nil)
		m.Lookup("op", true)
		m.Called("op", nil)
		_ = m.Register(nil)
	})
}
