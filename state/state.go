// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/farmvault/farm/kv"
	"github.com/farmvault/farm/stackedmap"
)

// State manages a journaled overlay on top of a kv getter.
type State struct {
	src kv.Getter
	sm  *stackedmap.StackedMap[string, []byte]
}

// New create a state object over the given source.
func New(src kv.Getter) *State {
	s := &State{src: src}
	s.sm = stackedmap.New(s.cacheGetter)
	return s
}

func (s *State) cacheGetter(key string) ([]byte, bool, error) {
	val, err := s.src.Get([]byte(key))
	if err != nil {
		if s.src.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "state read")
	}
	return val, true, nil
}

// Get returns the value for key, or nil if absent or deleted.
func (s *State) Get(key []byte) ([]byte, error) {
	val, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Has returns whether key holds a non-empty value.
func (s *State) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return len(val) > 0, nil
}

// Set stores value for key. An empty value deletes the key.
func (s *State) Set(key, value []byte) {
	s.sm.Put(string(key), append([]byte(nil), value...))
}

// Delete removes key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), nil)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	if revision < 0 || revision > s.sm.Depth() {
		panic("invalid checkpoint revision")
	}
	s.sm.PopTo(revision)
	if s.sm.Depth() == 0 {
		s.sm.Push()
	}
}

// Stage collapses the journal into the final set of changes.
func (s *State) Stage() *Stage {
	changes := make(map[string][]byte)
	s.sm.Journal(func(key string, value []byte) bool {
		changes[key] = value
		return true
	})
	return newStage(changes)
}
