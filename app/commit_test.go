package app

import (
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memStore() ledger.KVStore {
	return ledgertest.CommitKVStore().CacheWrap()
}

func TestCommitStore(t *testing.T) {
	cs, err := NewCommitStore(ledgertest.CommitKVStore())
	require.NoError(t, err)

	k, v := []byte("esc:J1"), []byte("record")
	require.NoError(t, cs.DeliverStore().Set(k, v))
	require.NoError(t, cs.CheckStore().Set([]byte("check"), []byte("only")))

	// nothing is visible before commit
	got, err := cs.Committed().Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)

	id, err := cs.Commit()
	require.NoError(t, err)
	assert.EqualValues(t, 1, id.Version)
	assert.NotEmpty(t, id.Hash)

	got, err = cs.Committed().Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// check writes are dropped, caches see the new state
	got, err = cs.Committed().Get([]byte("check"))
	require.NoError(t, err)
	assert.Nil(t, got)
	got, err = cs.CheckStore().Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	info, err := cs.CommitInfo()
	require.NoError(t, err)
	assert.Equal(t, id, info)
}

func TestChainID(t *testing.T) {
	db := memStore()
	id, err := loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "", id)

	err = saveChainID(db, "bad")
	assert.True(t, errors.ErrInvalidInput.Is(err))

	require.NoError(t, saveChainID(db, "kazi-test-1"))
	id, err = loadChainID(db)
	require.NoError(t, err)
	assert.Equal(t, "kazi-test-1", id)

	err = saveChainID(db, "kazi-test-2")
	assert.True(t, errors.ErrUnauthorized.Is(err))
}
