package utils

import (
	"context"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func TestActionTagger(t *testing.T) {
	jobTag := common.KVPair{Key: []byte("job"), Value: []byte("J1")}
	release := actionTag("escrow/release")

	specs := []struct {
		name    string
		handler *ledgertest.Handler
		wantErr *errors.Error
		want    []common.KVPair
	}{
		{
			name:    "path is tagged",
			handler: &ledgertest.Handler{},
			want:    []common.KVPair{release},
		},
		{
			name:    "handler tags come first",
			handler: &ledgertest.Handler{DeliverResult: ledger.DeliverResult{Tags: []common.KVPair{jobTag}}},
			want:    []common.KVPair{jobTag, release},
		},
		{
			name:    "failures are not tagged",
			handler: &ledgertest.Handler{DeliverErr: errors.ErrInsufficientAmount},
			wantErr: errors.ErrInsufficientAmount,
		},
	}

	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			h := ledgertest.Decorate(s.handler, NewActionTagger())
			tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/release"}}

			res, err := h.Deliver(context.Background(), store.MemStore(), tx)
			if s.wantErr != nil {
				require.True(t, s.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, s.want, res.Tags)
		})
	}

	t.Run("check is untouched", func(t *testing.T) {
		h := ledgertest.Decorate(&ledgertest.Handler{}, NewActionTagger())
		tx := &ledgertest.Tx{Msg: &ledgertest.Msg{RoutePath: "escrow/release"}}
		_, err := h.Check(context.Background(), store.MemStore(), tx)
		assert.NoError(t, err)
	})
}
