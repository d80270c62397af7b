package store

import (
	"bytes"

	"github.com/google/btree"
)

// collectAscending returns the pending entries within [start, end) in
// ascending key order. nil bounds are open.
func collectAscending(bt *btree.BTree, start, end []byte) []entry {
	var entries []entry
	collect := func(item btree.Item) bool {
		entries = append(entries, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return entries
}

// collectDescending is collectAscending in reverse, which keeps the
// same inclusive start and exclusive end.
func collectDescending(bt *btree.BTree, start, end []byte) []entry {
	entries := collectAscending(bt, start, end)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

// side tells which cursor holds the next key of a merge.
type side int

const (
	sideNone side = iota
	sideCache
	sideParent
	sideBoth // same key on both, the cache shadows the parent
)

// itemIter merges pending cache entries with the parent iterator.
// Tombstones hide the parent value of their key.
type itemIter struct {
	items   []entry
	idx     int
	reverse bool
	parent  Iterator
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []entry, parent Iterator, reverse bool) (*itemIter, error) {
	it := &itemIter{items: items, reverse: reverse, parent: parent}
	if err := it.skipTombstones(); err != nil {
		return nil, err
	}
	return it, nil
}

func (i *itemIter) cacheValid() bool  { return i.idx < len(i.items) }
func (i *itemIter) parentValid() bool { return i.parent != nil && i.parent.Valid() }
func (i *itemIter) ours() entry       { return i.items[i.idx] }

func (i *itemIter) Valid() bool {
	return i.cacheValid() || i.parentValid()
}

// Next panics on an exhausted iterator.
func (i *itemIter) Next() error {
	if err := i.advance(i.next()); err != nil {
		return err
	}
	return i.skipTombstones()
}

func (i *itemIter) Key() []byte {
	if i.next() == sideParent {
		return i.parent.Key()
	}
	return i.ours().key
}

func (i *itemIter) Value() []byte {
	if i.next() == sideParent {
		return i.parent.Value()
	}
	return i.ours().value
}

func (i *itemIter) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

func (i *itemIter) advance(s side) error {
	switch s {
	case sideCache:
		i.idx++
	case sideBoth:
		i.idx++
		return i.parent.Next()
	case sideParent:
		return i.parent.Next()
	default:
		panic("iterator exhausted")
	}
	return nil
}

func (i *itemIter) skipTombstones() error {
	for {
		s := i.next()
		if s != sideCache && s != sideBoth {
			return nil
		}
		if !i.ours().deleted {
			return nil
		}
		if err := i.advance(s); err != nil {
			return err
		}
	}
}

// next picks the cursor with the closest key in iteration order. Key and
// Value on sideNone index past the cache and panic.
func (i *itemIter) next() side {
	cache, par := i.cacheValid(), i.parentValid()
	switch {
	case !cache && !par:
		return sideNone
	case !par:
		return sideCache
	case !cache:
		return sideParent
	}
	cmp := bytes.Compare(i.parent.Key(), i.ours().key)
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return sideParent
	case cmp > 0:
		return sideCache
	default:
		return sideBoth
	}
}
