// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/farmvault/farm/kv"
)

var _ kv.Database = (*LevelDB)(nil)

// Options options for creating level db instance.
type Options struct {
	CacheSize              int
	OpenFilesCacheCapacity int
}

var (
	writeOpt = opt.WriteOptions{Sync: true}
	readOpt  = opt.ReadOptions{}
)

// LevelDB wraps level db impls.
type LevelDB struct {
	db  *leveldb.DB
	stg storage.Storage
}

// New create a persistent level db instance.
// Create an empty one if not exists, or open if already there.
func New(path string, opts Options) (*LevelDB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "new persistent level db")
	}
	return openLevelDB(stg, opts.CacheSize, opts.OpenFilesCacheCapacity)
}

// NewMem create a level db in memory.
func NewMem() (*LevelDB, error) {
	return openLevelDB(storage.NewMemStorage(), 0, 0)
}

func openLevelDB(stg storage.Storage, cacheSize, openFilesCacheCapacity int) (*LevelDB, error) {
	if cacheSize < 16 {
		cacheSize = 16
	}

	if openFilesCacheCapacity < 16 {
		openFilesCacheCapacity = 16
	}

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFilesCacheCapacity,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		stg.Close()
		return nil, errors.Wrap(err, "open level db")
	}
	return &LevelDB{db: db, stg: stg}, nil
}

// IsNotFound to check if the error returned by Get indicates key not found.
func (ldb *LevelDB) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

// Get retrieve value for given key.
// It returns an error if key not found. The error can be checked via IsNotFound.
func (ldb *LevelDB) Get(key []byte) (value []byte, err error) {
	return ldb.db.Get(key, &readOpt)
}

// Has returns whether a key exists.
func (ldb *LevelDB) Has(key []byte) (bool, error) {
	return ldb.db.Has(key, &readOpt)
}

// Put save value fo give key.
func (ldb *LevelDB) Put(key, value []byte) error {
	return ldb.db.Put(key, value, &writeOpt)
}

// Delete deletes the give key and its value.
func (ldb *LevelDB) Delete(key []byte) error {
	return ldb.db.Delete(key, &writeOpt)
}

// Close close the level db.
// Later operations will all fail.
func (ldb *LevelDB) Close() error {
	if err := ldb.db.Close(); err != nil {
		ldb.stg.Close()
		return err
	}
	// leveldb.Open does not release the storage or its file lock
	return ldb.stg.Close()
}

// Snapshot returns a consistent read-only view of the db at the time of the call.
func (ldb *LevelDB) Snapshot() kv.Snapshot {
	snap, err := ldb.db.GetSnapshot()
	if err != nil {
		return &errSnapshot{err}
	}
	return &levelDBSnapshot{snap}
}

// Bulk create a bulk for atomic writing ops.
func (ldb *LevelDB) Bulk() kv.Bulk {
	return &levelDBBulk{
		ldb.db,
		&leveldb.Batch{},
	}
}

// Iterate create a iterator by range.
func (ldb *LevelDB) Iterate(r kv.Range) kv.Iterator {
	return ldb.db.NewIterator(toRange(r), &readOpt)
}

func toRange(r kv.Range) *util.Range {
	return &util.Range{Start: r.Start, Limit: r.Limit}
}

//////

// levelDBBulk wraps batch operations.
type levelDBBulk struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

// Put adds a put operation.
func (b *levelDBBulk) Put(key, value []byte) error {
	b.batch.Put(key, value)
	return nil
}

// Delete adds a delete operation.
func (b *levelDBBulk) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

// Write perform all ops in this batch.
func (b *levelDBBulk) Write() error {
	if b.batch.Len() == 0 {
		return nil
	}
	return b.db.Write(b.batch, &writeOpt)
}

type levelDBSnapshot struct {
	snap *leveldb.Snapshot
}

func (s *levelDBSnapshot) Get(key []byte) ([]byte, error) { return s.snap.Get(key, &readOpt) }
func (s *levelDBSnapshot) Has(key []byte) (bool, error)   { return s.snap.Has(key, &readOpt) }
func (s *levelDBSnapshot) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}
func (s *levelDBSnapshot) Iterate(r kv.Range) kv.Iterator {
	return s.snap.NewIterator(toRange(r), &readOpt)
}
func (s *levelDBSnapshot) Release() { s.snap.Release() }

type errSnapshot struct {
	err error
}

func (s *errSnapshot) Get([]byte) ([]byte, error) { return nil, s.err }
func (s *errSnapshot) Has([]byte) (bool, error)   { return false, s.err }
func (s *errSnapshot) IsNotFound(error) bool      { return false }
func (s *errSnapshot) Iterate(kv.Range) kv.Iterator {
	return iterator.NewEmptyIterator(s.err)
}
func (s *errSnapshot) Release() {}
