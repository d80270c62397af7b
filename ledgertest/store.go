package ledgertest

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/store/iavl"
)

// CommitKVStore returns an empty merkle store kept in memory.
func CommitKVStore() ledger.CommitKVStore {
	return iavl.MockCommitStore()
}
