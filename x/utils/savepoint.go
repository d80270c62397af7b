package utils

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
)

type phase uint8

const (
	phaseCheck phase = 1 << iota
	phaseDeliver
)

// Savepoint runs the wrapped handler on a cache of the store and only
// writes the cache back when the handler succeeds. A failed release or
// deposit therefore leaves no partial balance changes behind.
//
// The zero value is inactive; enable it with OnCheck and/or OnDeliver.
type Savepoint struct {
	phases phase
}

var _ ledger.Decorator = Savepoint{}

// NewSavepoint returns an inactive Savepoint.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables isolation for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{phases: s.phases | phaseCheck}
}

// OnDeliver enables isolation for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{phases: s.phases | phaseDeliver}
}

func (s Savepoint) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	var res *ledger.CheckResult
	err := s.isolate(ctx, phaseCheck, store, func(db ledger.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	var res *ledger.DeliverResult
	err := s.isolate(ctx, phaseDeliver, store, func(db ledger.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn directly when the phase is disabled or the store
// cannot be cache wrapped. Otherwise fn gets a cache that is written on
// success and discarded on error.
func (s Savepoint) isolate(ctx ledger.Context, p phase, store ledger.KVStore, fn func(ledger.KVStore) error) error {
	cacheable, ok := store.(ledger.CacheableKVStore)
	if s.phases&p == 0 || !ok {
		return fn(store)
	}

	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		ledger.GetLogger(ctx).Debug("savepoint rolled back", "err", err)
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
