// Copyright (c) 2019 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key/value storage used by the ledger.
package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Getter reads values.
type Getter interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter writes values.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Snapshot is a frozen view of the store. It must be released.
type Snapshot interface {
	Getter
	Iterable
	Release()
}

// Bulk collects writes. Nothing is visible to readers until Write succeeds.
type Bulk interface {
	Putter
	Write() error
}

// Iterator walks key order forward. Key and Value are only valid until the next call to Next.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range is the key range [Start, Limit). A nil Limit means no upper bound.
type Range struct {
	Start []byte
	Limit []byte
}

// PrefixRange returns the range of keys starting with prefix.
func PrefixRange(prefix []byte) Range {
	r := util.BytesPrefix(prefix)
	return Range{Start: r.Start, Limit: r.Limit}
}

// Iterable creates iterators.
type Iterable interface {
	Iterate(r Range) Iterator
}

// Store is the full functional store.
type Store interface {
	Getter
	Putter
	Iterable

	Snapshot() Snapshot
	Bulk() Bulk
}

// Database is a store owning its underlying resources.
type Database interface {
	Store
	Close() error
}
