package ledger

// ReadOnlyKVStore is the read side of every store. Queries only get this.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound
	// is open. The range must not be written while the iterator is open.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending key order, with
	// the same rules as Iterator.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Keys and
// values passed in must not be modified afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is what handlers read from and write to.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them to its store on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range. Close it when done:
//
//	itr, err := db.Iterator(start, end)
//	...
//	defer itr.Close()
//	for ; itr.Valid(); itr.Next() {
//		key, value := itr.Key(), itr.Value()
//	}
type Iterator interface {
	// Valid is false once the range is exhausted, and stays false.
	Valid() bool

	// Next, Key and Value panic on an invalid iterator. Returned
	// slices must not be modified.
	Next() error
	Key() []byte
	Value() []byte

	Close()
}

// CacheableKVStore can stage writes in a cache that is later written
// back or dropped as a whole, much like a SQL savepoint.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a staging layer. Reads see the staged writes on top of
// the parent. Write applies them to the parent, Discard drops them.
// Caches nest, so a savepoint can be taken inside a block.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. Each Commit produces a new
// version with its own merkle root.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	Commit() (CommitID, error)

	// LoadLatestVersion restores the last complete version, which may be
	// an older one if the node stopped during a commit.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version.
type CommitID struct {
	Version int64
	Hash    []byte
}
