// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"sync"
	"time"
)

// Clock supplies the current unix timestamp in seconds.
type Clock interface {
	Now() uint64
}

// System reads the wall clock. It never goes backwards relative to its own previous reading.
type System struct {
	lock sync.Mutex
	last uint64
}

func (s *System) Now() uint64 {
	now := uint64(time.Now().Unix())

	s.lock.Lock()
	defer s.lock.Unlock()
	if now < s.last {
		return s.last
	}
	s.last = now
	return now
}

// Manual is a clock driven by the caller.
type Manual struct {
	lock sync.Mutex
	now  uint64
}

func NewManual(now uint64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() uint64 {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.now
}

// Advance moves the clock forward by d seconds.
func (m *Manual) Advance(d uint64) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.now += d
}

// Set moves the clock to ts. Earlier timestamps are ignored.
func (m *Manual) Set(ts uint64) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if ts > m.now {
		m.now = ts
	}
}
