// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	persisted, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer persisted.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, ldb := range []*LevelDB{persisted, mem} {
		require.NoError(t, ldb.Put(key, value))

		got, err := ldb.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := ldb.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = ldb.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, ldb.Delete(key))
		_, err = ldb.Get(key)
		assert.True(t, ldb.IsNotFound(err))
	}
}

func TestBulkIsAtomic(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	bulk := ldb.Bulk()
	require.NoError(t, bulk.Put([]byte("a"), []byte("1")))
	require.NoError(t, bulk.Put([]byte("b"), []byte("2")))

	has, err := ldb.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has, "bulk not visible before write")

	require.NoError(t, bulk.Write())
	got, err := ldb.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}

func TestSnapshot(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	require.NoError(t, ldb.Put([]byte("k"), []byte("old")))
	snap := ldb.Snapshot()
	defer snap.Release()

	require.NoError(t, ldb.Put([]byte("k"), []byte("new")))

	got, err := snap.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), got)

	require.NoError(t, ldb.Put([]byte("k2"), []byte("later")))
	it := snap.Iterate(kv.PrefixRange([]byte("k")))
	defer it.Release()
	var keys []string
	for it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Error())
	assert.Equal(t, []string{"k"}, keys, "snapshot iteration ignores later writes")
}

func TestBucketIterate(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	bucket := kv.Bucket("p/")
	require.NoError(t, ldb.Put(bucket.Key([]byte("1")), []byte("x")))
	require.NoError(t, ldb.Put(bucket.Key([]byte("2")), []byte("y")))
	require.NoError(t, ldb.Put([]byte("q/3"), []byte("z")))

	iter := bucket.Iterate(ldb, kv.Range{})
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"1", "2"}, keys)
}
