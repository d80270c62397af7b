package sigs

import (
	"context"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module
// can add a signer
func withSigners(ctx ledger.Context, signers []ledger.Identity) ledger.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate authorizes the identities whose signatures were verified
// by the Decorator.
type Authenticate struct{}

var _ x.Authorizer = Authenticate{}

// Signers returns who signed the current Context.
// May be empty
func (a Authenticate) Signers(ctx ledger.Context) []ledger.Identity {
	// (val, ok) form to return nil instead of panic if unset
	val, _ := ctx.Value(contextKeySigners).([]ledger.Identity)
	return val
}

// Verify checks if the identity signed the current Context.
func (a Authenticate) Verify(ctx ledger.Context, id ledger.Identity) bool {
	if !id.IsSet() {
		return false
	}
	for _, s := range a.Signers(ctx) {
		if id.Equals(s) {
			return true
		}
	}
	return false
}
