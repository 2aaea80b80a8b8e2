// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmvault/farm/log"
)

const namespace = "farm"

var logger = log.WithContext("pkg", "metrics")

// InitializePrometheusMetrics switches the backend to prometheus. Later calls are ignored.
func InitializePrometheusMetrics() {
	backendLock.Lock()
	defer backendLock.Unlock()
	if _, ok := backend.(*promBackend); !ok {
		backend = newPromBackend()
	}
}

type promBackend struct {
	registry *prometheus.Registry
	meters   sync.Map // name => *onceMeter
}

func newPromBackend() *promBackend {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return &promBackend{registry: registry}
}

// onceMeter makes concurrent first calls for the same name register the collector once.
type onceMeter struct {
	once  sync.Once
	meter any
}

func (p *promBackend) getOrCreate(name string, create func() (prometheus.Collector, any)) any {
	v, _ := p.meters.LoadOrStore(name, &onceMeter{})
	m := v.(*onceMeter)
	m.once.Do(func() {
		collector, meter := create()
		if err := p.registry.Register(collector); err != nil {
			logger.Warn("unable to register metric", "name", name, "err", err)
		}
		m.meter = meter
	})
	return m.meter
}

func (p *promBackend) CounterVec(name, help string, labels []string) CounterVec {
	return p.getOrCreate(name, func() (prometheus.Collector, any) {
		vec := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
		return vec, &promCounterVec{vec}
	}).(CounterVec)
}

func (p *promBackend) GaugeVec(name, help string, labels []string) GaugeVec {
	return p.getOrCreate(name, func() (prometheus.Collector, any) {
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help}, labels)
		return vec, &promGaugeVec{vec}
	}).(GaugeVec)
}

func (p *promBackend) HistogramVec(name, help string, labels []string, buckets []int64) HistogramVec {
	return p.getOrCreate(name, func() (prometheus.Collector, any) {
		vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   floatBuckets(buckets),
		}, labels)
		return vec, &promHistogramVec{vec}
	}).(HistogramVec)
}

func (p *promBackend) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func floatBuckets(buckets []int64) []float64 {
	if len(buckets) == 0 {
		return nil
	}
	out := make([]float64, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, float64(b))
	}
	return out
}

type promCounterVec struct{ vec *prometheus.CounterVec }

func (c *promCounterVec) Add(delta int64, labels Labels) {
	c.vec.With(labels).Add(float64(delta))
}

type promGaugeVec struct{ vec *prometheus.GaugeVec }

func (g *promGaugeVec) Set(v int64, labels Labels) {
	g.vec.With(labels).Set(float64(v))
}

func (g *promGaugeVec) Add(delta int64, labels Labels) {
	g.vec.With(labels).Add(float64(delta))
}

type promHistogramVec struct{ vec *prometheus.HistogramVec }

func (h *promHistogramVec) Observe(v int64, labels Labels) {
	h.vec.With(labels).Observe(float64(v))
}
