package ledger

import (
	"encoding/json"
)

// Handler executes one family of messages, e.g. all escrow operations.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a tx cheaply for the mempool. It runs against a
// scratch copy of the state and must not rely on its writes surviving.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a tx included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator is middleware around a Handler. It may inspect or enrich the
// context and store, short circuit with an error, or post-process the
// result of next.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message types to the handler that executes them. The
// route is taken from the Path of the prototype message m.
type Registry interface {
	Handle(m Msg, h Handler)
}

// Options is the app_state of the genesis file, split by extension name.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched and is not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, obj)
}

// Initializer loads the genesis section of one extension into the store.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs several initializers in order, stopping at the
// first one that fails.
type ChainInitializers []Initializer

var _ Initializer = ChainInitializers{}

func (c ChainInitializers) FromGenesis(opts Options, kv KVStore) error {
	for _, init := range c {
		if err := init.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
