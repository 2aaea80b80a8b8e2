// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func reset(t *testing.T) {
	backendLock.Lock()
	backend = noopBackend{}
	backendLock.Unlock()
	t.Cleanup(func() {
		backendLock.Lock()
		backend = noopBackend{}
		backendLock.Unlock()
	})
}

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := current().(*promBackend).registry.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		out[mf.GetName()] = mf
	}
	return out
}

func TestNoopByDefault(t *testing.T) {
	reset(t)

	assert.Nil(t, HTTPHandler())
	assert.IsType(t, noopMeter{}, LazyCounterVec("c", "", []string{"op"})())
	assert.IsType(t, noopMeter{}, LazyGaugeVec("g", "", nil)())
	assert.IsType(t, noopMeter{}, LazyHistogramVec("h", "", nil, nil)())

	// meters without a backend must not panic on mismatched labels
	LazyCounterVec("c2", "", []string{"op"})().Add(1, Labels{"nonsense": "x"})
}

func TestPrometheus(t *testing.T) {
	reset(t)

	counter := LazyCounterVec("ops", "operations", []string{"op", "result"})
	gauge := LazyGaugeVec("pool_amount", "pool amounts", []string{"pool"})
	hist := LazyHistogramVec("op_duration", "durations", []string{"op"}, BucketLedgerOps)

	InitializePrometheusMetrics()
	InitializePrometheusMetrics()

	counter().Add(2, Labels{"op": "stake", "result": "ok"})
	counter().Add(1, Labels{"op": "stake", "result": "revert"})
	gauge().Set(100, Labels{"pool": "0"})
	gauge().Add(-40, Labels{"pool": "0"})
	hist().Observe(30, Labels{"op": "stake"})
	hist().Observe(70, Labels{"op": "stake"})

	// same name, same meter
	assert.Same(t, counter(), current().CounterVec("ops", "operations", []string{"op", "result"}))

	families := gather(t)
	ops := families["farm_ops"]
	require.NotNil(t, ops)
	require.Len(t, ops.Metric, 2)
	assert.Equal(t, "operations", ops.GetHelp())
	var total float64
	for _, m := range ops.Metric {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, float64(3), total)

	assert.Equal(t, float64(60), families["farm_pool_amount"].Metric[0].GetGauge().GetValue())
	assert.Equal(t, float64(100), families["farm_op_duration"].Metric[0].GetHistogram().GetSampleSum())
	assert.Equal(t, uint64(2), families["farm_op_duration"].Metric[0].GetHistogram().GetSampleCount())

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `farm_ops{op="stake",result="ok"} 2`)
	assert.Contains(t, string(body), "go_goroutines")
}
