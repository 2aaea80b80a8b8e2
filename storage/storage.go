// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package storage provides typed records on top of the revertable state.
// Records are RLP encoded and located by blake2b(key, slot), so distinct slots never collide.
package storage

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/farmvault/farm/farm"
	"github.com/farmvault/farm/kv"
	"github.com/farmvault/farm/state"
)

// Bucket holds every typed record.
const Bucket = kv.Bucket("r/")

type Key interface {
	Bytes() []byte
}

// Slot names a record family.
func Slot(name string) farm.Bytes32 {
	return farm.BytesToBytes32([]byte(name))
}

func position(key []byte, slot farm.Bytes32) []byte {
	pos := farm.Blake2b(key, slot.Bytes())
	return Bucket.Key(pos[:])
}

func decode[V any](st *state.State, pos []byte) (value V, ok bool, err error) {
	raw, err := st.Get(pos)
	if err != nil {
		return value, false, err
	}
	if len(raw) == 0 {
		return value, false, nil
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, false, errors.Wrap(err, "decode record")
	}
	return value, true, nil
}

func encode[V any](st *state.State, pos []byte, value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	st.Set(pos, raw)
	return nil
}

// Mapping is a key/value storage abstraction similar to the mapping in Solidity.
type Mapping[K Key, V any] struct {
	state   *state.State
	basePos farm.Bytes32
}

func NewMapping[K Key, V any](st *state.State, pos farm.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{state: st, basePos: pos}
}

// Get returns the zero value of V if the key is absent.
func (m *Mapping[K, V]) Get(key K) (V, error) {
	v, _, err := decode[V](m.state, position(key.Bytes(), m.basePos))
	return v, err
}

func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	return m.state.Has(position(key.Bytes(), m.basePos))
}

// Insert stores a new value and fails if the key is already present.
func (m *Mapping[K, V]) Insert(key K, value V) error {
	pos := position(key.Bytes(), m.basePos)
	exists, err := m.state.Has(pos)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("mapping: key already exists")
	}
	return encode(m.state, pos, value)
}

// Update overwrites an existing value and fails if the key is absent.
func (m *Mapping[K, V]) Update(key K, value V) error {
	pos := position(key.Bytes(), m.basePos)
	exists, err := m.state.Has(pos)
	if err != nil {
		return err
	}
	if !exists {
		return errors.New("mapping: key not found")
	}
	return encode(m.state, pos, value)
}

func (m *Mapping[K, V]) Delete(key K) {
	m.state.Delete(position(key.Bytes(), m.basePos))
}

// Raw is a single record stored at a fixed slot.
type Raw[V any] struct {
	state *state.State
	pos   []byte
}

func NewRaw[V any](st *state.State, pos farm.Bytes32) *Raw[V] {
	return &Raw[V]{state: st, pos: position(nil, pos)}
}

// Get returns the zero value of V if nothing is stored.
func (r *Raw[V]) Get() (V, error) {
	v, _, err := decode[V](r.state, r.pos)
	return v, err
}

func (r *Raw[V]) Upsert(value V) error {
	return encode(r.state, r.pos, value)
}
