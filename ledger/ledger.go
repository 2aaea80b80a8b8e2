// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger schedules staking operations against the store.
//
// Operations are serialised. Each one runs on a fresh state overlay which is committed in a
// single batch when the operation succeeds and dropped otherwise, so a failed operation leaves
// no trace.
package ledger

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/farmvault/farm/clock"
	"github.com/farmvault/farm/derive"
	"github.com/farmvault/farm/kv"
	"github.com/farmvault/farm/log"
	"github.com/farmvault/farm/metrics"
	"github.com/farmvault/farm/reverts"
	"github.com/farmvault/farm/staker"
	"github.com/farmvault/farm/staker/pool"
	"github.com/farmvault/farm/state"
)

var logger = log.WithContext("pkg", "ledger")

const resolverCacheSize = 16384

type Ledger struct {
	db       kv.Store
	clock    clock.Clock
	resolver *derive.Resolver
	lock     sync.RWMutex
}

func New(db kv.Store, clk clock.Clock) *Ledger {
	return &Ledger{
		db:       db,
		clock:    clk,
		resolver: derive.New(resolverCacheSize),
	}
}

// Clock returns the time source of the ledger.
func (l *Ledger) Clock() clock.Clock {
	return l.clock
}

// Exec runs fn as a single atomic operation named op.
func (l *Ledger) Exec(ctx context.Context, op string, fn func(s *staker.Staker) error) (err error) {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	defer func() {
		result := "ok"
		if err != nil {
			result = "revert"
			if !reverts.IsRevertErr(err) {
				result = "error"
			}
		}
		metricOpCounter().Add(1, metrics.Labels{"op": op, "result": result})
		metricOpDuration().Observe(time.Since(start).Microseconds(), metrics.Labels{"op": op})
	}()

	st := state.New(l.db)
	if err := fn(staker.New(st, l.resolver, l.clock)); err != nil {
		if reverts.IsRevertErr(err) {
			logger.Debug("operation reverted", "op", op, "err", err)
		} else {
			logger.Warn("operation failed", "op", op, "err", err)
		}
		return err
	}

	stage := st.Stage()
	if err := stage.Commit(l.db.Bulk()); err != nil {
		logger.Error("failed to commit", "op", op, "err", err)
		return errors.WithMessage(err, op)
	}
	logger.Debug("operation committed", "op", op, "changes", stage.Len(), "elapsed", time.Since(start))
	return nil
}

// View runs fn over a consistent read only snapshot.
func (l *Ledger) View(ctx context.Context, fn func(s *staker.Staker) error) error {
	return l.view(ctx, func(_ kv.Snapshot, s *staker.Staker) error {
		return fn(s)
	})
}

// view also hands fn the snapshot so that index scans read the same version as s.
func (l *Ledger) view(ctx context.Context, fn func(snap kv.Snapshot, s *staker.Staker) error) error {
	l.lock.RLock()
	defer l.lock.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot := l.db.Snapshot()
	defer snapshot.Release()

	return fn(snapshot, staker.New(state.New(snapshot), l.resolver, l.clock))
}

func (l *Ledger) reportPool(p *pool.Pool) {
	if p == nil {
		return
	}
	idx := strconv.Itoa(int(p.Index))
	gauge := metricPoolGauge()
	gauge.Set(int64(p.AmountStaked), metrics.Labels{"pool": idx, "kind": "staked"})
	gauge.Set(int64(p.AmountReward), metrics.Labels{"pool": idx, "kind": "reward"})
	gauge.Set(int64(p.AmountRewardReserved), metrics.Labels{"pool": idx, "kind": "reserved"})
	gauge.Set(int64(p.CountStakes), metrics.Labels{"pool": idx, "kind": "positions"})

	hit, miss := l.resolver.Stats()
	metricResolverHits().Set(hit, metrics.Labels{"event": "hit"})
	metricResolverHits().Set(miss, metrics.Labels{"event": "miss"})
}
