package store

import (
	"github.com/kazitrust/ledger/errors"
)

// SliceIterator iterates over models that are already in memory, in
// slice order.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.idx < len(s.data)
}

// Next panics when called on an exhausted iterator.
func (s *SliceIterator) Next() error {
	s.current()
	s.idx++
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator is exhausted")
	}
	return s.data[s.idx]
}

// EmptyKVStore holds nothing and drops every write. It is the bottom
// layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error { return nil }
func (EmptyKVStore) Delete(key []byte) error { return nil }
func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// Op is a single pending write, a set or a delete.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// SetOp records writing value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp records removing key.
func DelOp(key []byte) Op {
	return Op{key: key, del: true}
}

// Apply performs the operation on out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues operations and replays them on Write. A failure
// halfway leaves the earlier operations applied, so it only suits in
// memory targets such as a parent cache. Persistent stores provide their
// own batches.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays the queued operations in order and empties the queue.
func (b *NonAtomicBatch) Write() error {
	ops := b.ops
	b.ops = nil
	for i, op := range ops {
		if err := op.Apply(b.out); err != nil {
			return errors.Wrapf(errors.ErrDatabase, "batch op %d: %s", i, err)
		}
	}
	return nil
}

// ShowOps returns the queued operations. Tests use it to inspect writes.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
