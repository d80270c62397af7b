package cash

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/coin"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	alice, bob := ledgertest.NewIdentity(), ledgertest.NewIdentity()

	genesis := `{"cash": [{"address": "` + string(alice) + `", "asset": "KES", "amount": "100"}]}`
	var opts ledger.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	cases := map[string]struct {
		signer    ledger.Identity
		msg       *SendMsg
		wantErr   *errors.Error
		wantAlice string
		wantBob   string
	}{
		"send": {
			signer:    alice,
			msg:       &SendMsg{Src: alice, Dest: bob, Asset: "KES", Amount: "40"},
			wantAlice: "60",
			wantBob:   "40",
		},
		"not signed by the sender": {
			signer:    bob,
			msg:       &SendMsg{Src: alice, Dest: bob, Asset: "KES", Amount: "40"},
			wantErr:   errors.ErrUnauthorized,
			wantAlice: "100",
			wantBob:   "0",
		},
		"too much": {
			signer:    alice,
			msg:       &SendMsg{Src: alice, Dest: bob, Asset: "KES", Amount: "101"},
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: "100",
			wantBob:   "0",
		},
		"zero": {
			signer:    alice,
			msg:       &SendMsg{Src: alice, Dest: bob, Asset: "KES", Amount: "0"},
			wantErr:   errors.ErrInvalidAmount,
			wantAlice: "100",
			wantBob:   "0",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, Initializer{}.FromGenesis(opts, db))

			h := NewSendHandler(&ledgertest.Auth{Signer: tc.signer}, NewController())
			tx := &ledgertest.Tx{Msg: tc.msg}
			ctx := context.Background()

			_, err := h.Check(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			_, err = h.Deliver(ctx, db, tx)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}
			assert.Equal(t, tc.wantAlice, balance(t, db, alice, "KES"))
			assert.Equal(t, tc.wantBob, balance(t, db, bob, "KES"))
		})
	}
}

func TestWalletQuery(t *testing.T) {
	alice := ledgertest.NewIdentity()
	db := store.MemStore()
	require.NoError(t, NewController().Issue(db, alice, "KES", coin.NewAmount(12)))

	qr := ledger.NewQueryRouter()
	RegisterQuery(qr)
	h := qr.Handler("/wallets")

	res, err := h.Query(db, []byte(alice))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.JSONEq(t, `{"KES": "12"}`, string(res[0].Value))

	res, err = h.Query(db, []byte(ledgertest.NewIdentity()))
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = h.Query(db, []byte("nobody"))
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
