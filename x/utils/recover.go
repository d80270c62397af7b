package utils

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
)

// Recovery converts a panic anywhere below it in the stack into an
// ErrPanic result, so a faulty handler rejects the transaction instead
// of halting the node. Place it above Savepoint so the cache of a
// panicking handler is never written.
type Recovery struct{}

var _ ledger.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (res *ledger.CheckResult, err error) {
	defer recoverInto(ctx, &err)
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (res *ledger.DeliverResult, err error) {
	defer recoverInto(ctx, &err)
	return next.Deliver(ctx, store, tx)
}

// recoverInto must be deferred directly, as recover only works there.
func recoverInto(ctx ledger.Context, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		ledger.GetLogger(ctx).Error("handler panic", "panic", r)
	}
}
