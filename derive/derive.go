// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package derive computes program owned addresses from seed components.
//
// A derived address is blake2b(len(seed) ++ seed..., [nonce], marker)[12:] for the highest nonce whose
// digest does not start with 0xff. Digests starting with 0xff are reserved for externally
// held keys, so a derived address can only be spent through a program authority.
package derive

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/farmvault/farm/cache"
	"github.com/farmvault/farm/farm"
)

const (
	marker       = "farm-derived-address"
	reservedByte = 0xff
	maxSeeds     = 16
	maxSeedLen   = 32
)

var ErrInvalidSeeds = errors.New("derive: invalid seeds")

type result struct {
	addr  farm.Address
	nonce uint8
}

// Resolver derives addresses and memoises the nonce search.
type Resolver struct {
	cache *cache.LRU
}

// New creates a resolver caching up to size results.
func New(size int) *Resolver {
	c, err := cache.NewLRU(size)
	if err != nil {
		panic(err)
	}
	return &Resolver{cache: c}
}

// Derive returns the derived address of the seeds and the nonce that produced it.
func (r *Resolver) Derive(seeds ...[]byte) (farm.Address, uint8) {
	v, err := r.cache.GetOrLoad(cacheKey(seeds), func(any) (any, error) {
		return search(seeds)
	})
	if err != nil {
		panic(err)
	}
	res := v.(result)
	return res.addr, res.nonce
}

// Stats returns hit and miss counters of the memoisation cache.
func (r *Resolver) Stats() (hit, miss int64) {
	return r.cache.Stats()
}

// CreateAddress computes the address of the seeds at the given nonce.
// It fails when the candidate falls into the reserved range.
func CreateAddress(seeds [][]byte, nonce uint8) (farm.Address, error) {
	if err := validate(seeds); err != nil {
		return farm.Address{}, err
	}
	addr, ok := candidate(seeds, nonce)
	if !ok {
		return farm.Address{}, errors.WithMessagef(ErrInvalidSeeds, "nonce %d not viable", nonce)
	}
	return addr, nil
}

func search(seeds [][]byte) (result, error) {
	if err := validate(seeds); err != nil {
		return result{}, err
	}
	for n := 255; n >= 0; n-- {
		if addr, ok := candidate(seeds, uint8(n)); ok {
			return result{addr, uint8(n)}, nil
		}
	}
	return result{}, errors.WithMessage(ErrInvalidSeeds, "no viable nonce")
}

func candidate(seeds [][]byte, nonce uint8) (farm.Address, bool) {
	h := farm.Blake2bFn(func(w io.Writer) {
		writeSeeds(w, seeds)
		w.Write([]byte{nonce})
		w.Write([]byte(marker))
	})
	if h[0] == reservedByte {
		return farm.Address{}, false
	}
	return farm.BytesToAddress(h[12:]), true
}

func validate(seeds [][]byte) error {
	if len(seeds) > maxSeeds {
		return errors.WithMessagef(ErrInvalidSeeds, "too many seeds: %d", len(seeds))
	}
	for _, s := range seeds {
		if len(s) > maxSeedLen {
			return errors.WithMessagef(ErrInvalidSeeds, "seed too long: %d", len(s))
		}
	}
	return nil
}

// writeSeeds frames each seed with its 2-byte big-endian length.
func writeSeeds(w io.Writer, seeds [][]byte) {
	var l [2]byte
	for _, s := range seeds {
		binary.BigEndian.PutUint16(l[:], uint16(len(s)))
		w.Write(l[:])
		w.Write(s)
	}
}

func cacheKey(seeds [][]byte) string {
	var b strings.Builder
	writeSeeds(&b, seeds)
	return b.String()
}
