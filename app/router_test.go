package app

import (
	"context"
	"testing"

	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter(t *testing.T) {
	var (
		ctx = context.Background()
		db  = store.MemStore()
		r   = NewRouter()
		h   = &ledgertest.Handler{}
		msg = &ledgertest.Msg{RoutePath: "escrow/create"}
	)
	r.Handle(msg, h)

	_, err := r.Check(ctx, db, &ledgertest.Tx{Msg: msg})
	require.NoError(t, err)
	_, err = r.Deliver(ctx, db, &ledgertest.Tx{Msg: msg})
	require.NoError(t, err)
	assert.Equal(t, 2, h.CallCount())

	unknown := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/unknown"}}
	_, err = r.Deliver(ctx, db, unknown)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Check(ctx, db, unknown)
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = r.Deliver(ctx, db, &ledgertest.Tx{Err: errors.ErrInvalidMsg})
	assert.True(t, errors.ErrInvalidMsg.Is(err))
	assert.Equal(t, 2, h.CallCount())
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	r.Handle(&ledgertest.Msg{RoutePath: "cash/send"}, &ledgertest.Handler{})

	assert.Panics(t, func() {
		r.Handle(&ledgertest.Msg{RoutePath: "cash/send"}, &ledgertest.Handler{})
	})
	assert.Panics(t, func() {
		r.Handle(&ledgertest.Msg{RoutePath: "cash send"}, &ledgertest.Handler{})
	})
}
