// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

type noopBackend struct{}

func (noopBackend) CounterVec(string, string, []string) CounterVec { return noopMeter{} }

func (noopBackend) GaugeVec(string, string, []string) GaugeVec { return noopMeter{} }

func (noopBackend) HistogramVec(string, string, []string, []int64) HistogramVec { return noopMeter{} }

func (noopBackend) Handler() http.Handler { return nil }

type noopMeter struct{}

func (noopMeter) Add(int64, Labels) {}

func (noopMeter) Set(int64, Labels) {}

func (noopMeter) Observe(int64, Labels) {}
