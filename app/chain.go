package app

import (
	"reflect"

	"github.com/kazitrust/ledger"
)

// Decorators is an ordered middleware stack waiting for the Handler
// it will wrap.
type Decorators struct {
	chain []ledger.Decorator
}

/*
ChainDecorators builds a middleware stack. The first decorator is the
outermost one, it sees every transaction before the rest of the chain.
Nil decorators are skipped, so optional middleware can be passed in
unconditionally:

  app.ChainDecorators(
    utils.NewRecovery(),
    utils.NewLogging(),
    sigs.NewDecorator(),
    utils.NewSavepoint().OnDeliver(),
  ).WithHandler(router)
*/
func ChainDecorators(chain ...ledger.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with the given decorators appended after
// the existing ones.
func (d Decorators) Chain(chain ...ledger.Decorator) Decorators {
	out := make([]ledger.Decorator, 0, len(d.chain)+len(chain))
	out = append(out, d.chain...)
	for _, dec := range chain {
		if isNil(dec) {
			continue
		}
		out = append(out, dec)
	}
	return Decorators{chain: out}
}

func isNil(d ledger.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack into a single Handler.
func (d Decorators) WithHandler(h ledger.Handler) ledger.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = layer{d: d.chain[i], next: h}
	}
	return h
}

// layer runs one decorator around the rest of the stack.
type layer struct {
	d    ledger.Decorator
	next ledger.Handler
}

var _ ledger.Handler = layer{}

func (l layer) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	return l.d.Check(ctx, store, tx, l.next)
}

func (l layer) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	return l.d.Deliver(ctx, store, tx, l.next)
}
