// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmvault/farm/kv"
	"github.com/farmvault/farm/lvldb"
)

func newStore(t *testing.T) *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateReadThrough(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("a"), []byte("1")))

	st := New(db)
	v, err := st.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	v, err = st.Get([]byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, v)

	has, err := st.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)
}

func TestStateCheckpoint(t *testing.T) {
	st := New(newStore(t))

	st.Set([]byte("a"), []byte("1"))
	cp := st.NewCheckpoint()
	st.Set([]byte("a"), []byte("2"))
	st.Delete([]byte("b"))

	v, _ := st.Get([]byte("a"))
	assert.Equal(t, []byte("2"), v)

	st.RevertTo(cp)
	v, _ = st.Get([]byte("a"))
	assert.Equal(t, []byte("1"), v)

	assert.Panics(t, func() { st.RevertTo(100) })
}

func TestStageCommit(t *testing.T) {
	db := newStore(t)
	require.NoError(t, db.Put([]byte("gone"), []byte("x")))

	st := New(db)
	st.Set([]byte("k1"), []byte("v1"))
	st.Set([]byte("k2"), []byte("v2"))
	st.Set([]byte("k2"), []byte("v3"))
	st.Delete([]byte("gone"))

	// nothing visible before commit
	has, err := db.Has([]byte("k1"))
	require.NoError(t, err)
	assert.False(t, has)

	stage := st.Stage()
	assert.Equal(t, 3, stage.Len())
	assert.True(t, stage.Changed([]byte("k2"), []byte("v3")))
	assert.True(t, stage.Changed([]byte("gone"), nil))
	require.NoError(t, stage.Commit(db.Bulk()))

	v, err := db.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), v)

	_, err = db.Get([]byte("gone"))
	assert.True(t, db.IsNotFound(err))
}

type failingGetter struct{}

func (failingGetter) Get([]byte) ([]byte, error) { return nil, errors.New("disk") }
func (failingGetter) Has([]byte) (bool, error)   { return false, errors.New("disk") }
func (failingGetter) IsNotFound(error) bool      { return false }

var _ kv.Getter = failingGetter{}

func TestStateReadError(t *testing.T) {
	st := New(failingGetter{})
	_, err := st.Get([]byte("a"))
	assert.ErrorContains(t, err, "disk")
}
