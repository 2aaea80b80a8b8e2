// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache memoises values loaded on demand.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a bounded cache counting the lookups served by GetOrLoad.
type LRU struct {
	*lru.Cache
	hit, miss atomic.Int64
}

// NewLRU creates a cache holding at most size entries. size must be positive.
func NewLRU(size int) (*LRU, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRU{Cache: c}, nil
}

// Loader produces the value of a missed key.
type Loader func(key any) (any, error)

// GetOrLoad returns the cached value of key, calling load on a miss.
// Failed loads are not cached.
func (l *LRU) GetOrLoad(key any, load Loader) (any, error) {
	if v, ok := l.Get(key); ok {
		l.hit.Add(1)
		return v, nil
	}
	l.miss.Add(1)
	v, err := load(key)
	if err != nil {
		return nil, err
	}
	l.Add(key, v)
	return v, nil
}

// Stats returns the hit and miss counts of GetOrLoad.
func (l *LRU) Stats() (hit, miss int64) {
	return l.hit.Load(), l.miss.Load()
}
