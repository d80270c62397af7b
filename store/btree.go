package store

import (
	"bytes"

	"github.com/google/btree"
)

// btreeDegree is the branching factor of every cache tree.
const btreeDegree = 2

// DefaultFreeListSize is the number of released nodes a cache keeps for reuse.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable gives any KVStore a btree backed CacheWrap.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns an in-memory store without persistence, mostly
// useful in tests.
func MemStore() CacheableKVStore {
	base := EmptyKVStore{}
	return NewBTreeCacheWrap(base, base.NewBatch(), nil)
}

// ShowOpser exposes the operations recorded by a store, in order.
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore returns an in-memory store together with a view of every
// write it received.
func LogableStore() (CacheableKVStore, ShowOpser) {
	base := EmptyKVStore{}
	ops := NewNonAtomicBatch(base)
	return NewBTreeCacheWrap(base, ops, nil), ops
}

// BTreeCacheWrap keeps pending writes in a btree on top of a read only
// parent. Writes are mirrored into batch, which reaches the parent on Write.
type BTreeCacheWrap struct {
	pending *btree.BTree
	free    *btree.FreeList
	parent  ReadOnlyKVStore
	batch   Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap wraps kv. All writes must go through batch, kv is
// only ever read. A nil free list allocates a new one, pass an existing
// list to share nodes between nested caches.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		pending: btree.NewWithFreeList(btreeDegree, free),
		free:    free,
		parent:  kv,
		batch:   batch,
	}
}

// CacheWrap nests another cache, sharing the node free list.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes pending operations to the parent and empties the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all pending operations, returning nodes to the free list.
func (b BTreeCacheWrap) Discard() {
	for b.pending.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete records a tombstone, hiding any parent value under key.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.pending.ReplaceOrInsert(entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	if e, ok := b.lookup(key); ok {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return b.parent.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	if e, ok := b.lookup(key); ok {
		return !e.deleted, nil
	}
	return b.parent.Has(key)
}

func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newItemIter(collectAscending(b.pending, start, end), parent, false)
}

func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newItemIter(collectDescending(b.pending, start, end), parent, true)
}

// lookup returns the pending entry for key, if any.
func (b BTreeCacheWrap) lookup(key []byte) (entry, bool) {
	item := b.pending.Get(entry{key: key})
	if item == nil {
		return entry{}, false
	}
	return item.(entry), true
}

// entry is a pending write. A deleted entry is a tombstone and carries
// no value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(entry).key) < 0
}
