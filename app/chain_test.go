package app

import (
	"context"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain(t *testing.T) {
	var nilDecorator *ledgertest.Decorator
	d1, d2 := &ledgertest.Decorator{}, &ledgertest.Decorator{}
	h := &ledgertest.Handler{}

	stack := ChainDecorators(d1, nil, nilDecorator).Chain(d2).WithHandler(h)

	ctx := context.Background()
	db := store.MemStore()
	_, err := stack.Check(ctx, db, &ledgertest.Tx{})
	require.NoError(t, err)
	_, err = stack.Deliver(ctx, db, &ledgertest.Tx{})
	require.NoError(t, err)

	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

// orderDecorator appends its name when it is reached.
type orderDecorator struct {
	name string
	seen *[]string
}

func (o orderDecorator) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	*o.seen = append(*o.seen, o.name)
	return next.Check(ctx, db, tx)
}

func (o orderDecorator) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	*o.seen = append(*o.seen, o.name)
	return next.Deliver(ctx, db, tx)
}

func TestChainOrder(t *testing.T) {
	var seen []string
	base := ChainDecorators(orderDecorator{"a", &seen})
	// chaining never shares storage between stacks
	left := base.Chain(orderDecorator{"b", &seen}).WithHandler(&ledgertest.Handler{})
	right := base.Chain(orderDecorator{"c", &seen}).WithHandler(&ledgertest.Handler{})

	_, err := left.Deliver(context.Background(), store.MemStore(), &ledgertest.Tx{})
	require.NoError(t, err)
	_, err = right.Deliver(context.Background(), store.MemStore(), &ledgertest.Tx{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a", "c"}, seen)
}
