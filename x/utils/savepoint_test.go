package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    ledger.Decorator
		handler ledger.Handler
		check   bool // whether to call Check or Deliver
		isError bool // true iff we expect errors

		written [][]byte // keys to find
		missing [][]byte // keys not to find
	}{
		"savepoint deactivated, returns error, both written": {
			save:    NewSavepoint(),
			handler: ledgertest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated, returns error, one written": {
			save:    NewSavepoint().OnCheck(),
			handler: ledgertest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated for deliver, returns error, one written": {
			save:    NewSavepoint().OnDeliver(),
			handler: ledgertest.WriteHandler{Key: nk, Value: nv, Err: derr},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint does not affect check": {
			save:    NewSavepoint().OnDeliver(),
			handler: ledgertest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok, nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: ledgertest.WriteHandler{Key: nk, Value: nv, Err: derr},
			check:   true,
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"success is written": {
			save:    NewSavepoint().OnDeliver(),
			handler: ledgertest.WriteHandler{Key: nk, Value: nv},
			written: [][]byte{ok, nk},
		},
		"panics are discarded with recovery": {
			save:    NewSavepoint().OnDeliver(),
			handler: ledgertest.PanicHandler{Value: "boom"},
			isError: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))

			// recovery outside the savepoint turns a panic into an error
			h := ledgertest.Decorate(ledgertest.Decorate(tc.handler, tc.save), NewRecovery())

			var err error
			if tc.check {
				_, err = h.Check(ctx, kv, nil)
			} else {
				_, err = h.Deliver(ctx, kv, nil)
			}
			if tc.isError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}
