// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"slices"

	"github.com/pkg/errors"

	"github.com/farmvault/farm/kv"
)

// Stage abstracts changes pending on the kv store.
type Stage struct {
	keys    []string
	changes map[string][]byte
}

func newStage(changes map[string][]byte) *Stage {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return &Stage{keys: keys, changes: changes}
}

// Len returns the number of keys touched.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Commit writes all changes into the bulk and flushes it.
func (s *Stage) Commit(bulk kv.Bulk) error {
	for _, k := range s.keys {
		v := s.changes[k]
		var err error
		if len(v) == 0 {
			err = bulk.Delete([]byte(k))
		} else {
			err = bulk.Put([]byte(k), v)
		}
		if err != nil {
			return errors.Wrap(err, "stage")
		}
	}
	return errors.Wrap(bulk.Write(), "commit")
}

// Changed reports whether key is staged with the given value. Empty value means deleted.
func (s *Stage) Changed(key, value []byte) bool {
	v, ok := s.changes[string(key)]
	return ok && bytes.Equal(v, value)
}
