package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := ledger.WithLogger(context.Background(), log.NewTMLogger(&buf))
	tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/release"}}
	l := NewLogging()

	_, err := l.Deliver(ctx, store.MemStore(), tx, &ledgertest.Handler{DeliverResult: ledger.DeliverResult{Log: "done"}})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "path=escrow/release")
	assert.Contains(t, buf.String(), "done")

	buf.Reset()
	_, err = l.Deliver(ctx, store.MemStore(), tx, &ledgertest.Handler{DeliverErr: errors.ErrUnauthorized})
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Contains(t, buf.String(), "unauthorized")
}
