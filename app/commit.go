package app

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
)

// CommitStore pairs the persistent store with the two caches of the open
// block: deliver collects state that will be committed, check is thrown
// away at every commit.
type CommitStore struct {
	committed ledger.CommitKVStore
	deliver   ledger.KVCacheWrap
	check     ledger.KVCacheWrap
}

// NewCommitStore restores the latest version of store.
func NewCommitStore(store ledger.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, dbErr(err)
	}
	cs := &CommitStore{committed: store}
	cs.reset()
	return cs, nil
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo is the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (ledger.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists the delivered writes as a new version and opens fresh
// caches for the next block.
func (cs *CommitStore) Commit() (ledger.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return ledger.CommitID{}, dbErr(err)
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, dbErr(err)
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() ledger.CacheableKVStore { return cs.check }

func (cs *CommitStore) DeliverStore() ledger.CacheableKVStore { return cs.deliver }

// Committed reads the last committed state, ignoring the open block.
func (cs *CommitStore) Committed() ledger.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

func dbErr(err error) error {
	return errors.Wrap(errors.ErrDatabase, err.Error())
}

// chainIDKey lives in the _l: space reserved for the application itself.
const chainIDKey = "_l:chainID"

func loadChainID(kv ledger.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", dbErr(err)
	}
	return string(raw), nil
}

// saveChainID binds the store to chainID. It can happen only once.
func saveChainID(kv ledger.KVStore, chainID string) error {
	if !ledger.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}
	key := []byte(chainIDKey)
	switch set, err := kv.Has(key); {
	case err != nil:
		return dbErr(err)
	case set:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is fixed at genesis")
	}
	if err := kv.Set(key, []byte(chainID)); err != nil {
		return dbErr(err)
	}
	return nil
}
