// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is the meter facade used by the ledger and the API.
//
// Meters are no-ops until InitializePrometheusMetrics is called. Meters declared at package
// level through the Lazy constructors resolve the backend on first use, so declaring them
// before the backend is chosen is fine.
package metrics

import (
	"net/http"
	"sync"
)

var (
	backend     Backend = noopBackend{}
	backendLock sync.RWMutex
)

func current() Backend {
	backendLock.RLock()
	defer backendLock.RUnlock()
	return backend
}

// Labels maps label names to values.
type Labels = map[string]string

// Backend creates meters. Calls with the same name return the same meter.
type Backend interface {
	CounterVec(name, help string, labels []string) CounterVec
	GaugeVec(name, help string, labels []string) GaugeVec
	HistogramVec(name, help string, labels []string, buckets []int64) HistogramVec
	Handler() http.Handler
}

// CounterVec is a family of monotonically increasing counters.
type CounterVec interface {
	Add(delta int64, labels Labels)
}

// GaugeVec is a family of values that go up and down.
type GaugeVec interface {
	Set(v int64, labels Labels)
	Add(delta int64, labels Labels)
}

// HistogramVec is a family of distributions.
type HistogramVec interface {
	Observe(v int64, labels Labels)
}

// HTTPHandler serves the collected metrics. It is nil while metrics are disabled.
func HTTPHandler() http.Handler {
	return current().Handler()
}

var (
	// BucketLedgerOps is in microseconds.
	BucketLedgerOps = []int64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10_000, 50_000}
	// BucketHTTPReqs is in milliseconds.
	BucketHTTPReqs = []int64{0, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 2000, 5000, 10000}
)

func lazy[T any](f func() T) func() T {
	var (
		result T
		once   sync.Once
	)
	return func() T {
		once.Do(func() { result = f() })
		return result
	}
}

func LazyCounterVec(name, help string, labels []string) func() CounterVec {
	return lazy(func() CounterVec { return current().CounterVec(name, help, labels) })
}

func LazyGaugeVec(name, help string, labels []string) func() GaugeVec {
	return lazy(func() GaugeVec { return current().GaugeVec(name, help, labels) })
}

func LazyHistogramVec(name, help string, labels []string, buckets []int64) func() HistogramVec {
	return lazy(func() HistogramVec { return current().HistogramVec(name, help, labels, buckets) })
}
