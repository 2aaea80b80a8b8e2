// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/farmvault/farm/metrics"

var (
	metricOpCounter = metrics.LazyCounterVec("ledger_op_count",
		"ledger operations by outcome", []string{"op", "result"})
	metricOpDuration = metrics.LazyHistogramVec("ledger_op_duration_us",
		"ledger operation latency in microseconds", []string{"op"}, metrics.BucketLedgerOps)
	metricPoolGauge = metrics.LazyGaugeVec("ledger_pool_amount",
		"pool counters after the last committed operation", []string{"pool", "kind"})
	metricResolverHits = metrics.LazyGaugeVec("ledger_resolver_cache",
		"derived address cache lookups", []string{"event"})
)
