// Copyright (c) 2021 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Bucket is a key prefix partitioning the store.
type Bucket string

// Key returns the store key of parts joined inside the bucket.
func (b Bucket) Key(parts ...[]byte) []byte {
	n := len(b)
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	key = append(key, b...)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// Range maps r, relative to the bucket, onto the store. A nil Limit stops at the end of the bucket.
func (b Bucket) Range(r Range) Range {
	out := Range{Start: b.Key(r.Start)}
	if len(r.Limit) == 0 {
		out.Limit = PrefixRange([]byte(b)).Limit
	} else {
		out.Limit = b.Key(r.Limit)
	}
	return out
}

// Iterate walks r inside the bucket. Yielded keys are relative to the bucket.
func (b Bucket) Iterate(src Iterable, r Range) Iterator {
	return &bucketIterator{Iterator: src.Iterate(b.Range(r)), n: len(b)}
}

type bucketIterator struct {
	Iterator
	n int
}

func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.n:]
}
