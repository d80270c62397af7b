package ledgertest

import (
	"context"
	"fmt"

	"github.com/kazitrust/ledger"
)

// Auth is an x.Authorizer that approves a fixed set of identities: Signer
// and everything in Others. Signers lists Others first.
type Auth struct {
	Signer ledger.Identity
	Others []ledger.Identity
}

func (a *Auth) Signers(ledger.Context) []ledger.Identity {
	ids := append([]ledger.Identity{}, a.Others...)
	if a.Signer.IsSet() {
		ids = append(ids, a.Signer)
	}
	return ids
}

func (a *Auth) Verify(ctx ledger.Context, id ledger.Identity) bool {
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

// CtxAuth is a mock implementing x.Authorizer interface.
//
// This implementation is using context to store and retrieve identities.
type CtxAuth struct {
	// Key used to set and retrieve identities from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetSigners(ctx ledger.Context, signers ...ledger.Identity) ledger.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) Signers(ctx ledger.Context) []ledger.Identity {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	ids, ok := val.([]ledger.Identity)
	if !ok {
		panic(fmt.Sprintf("instead of []ledger.Identity got %T", val))
	}
	return ids
}

func (a *CtxAuth) Verify(ctx ledger.Context, id ledger.Identity) bool {
	for _, s := range a.Signers(ctx) {
		if id.Equals(s) {
			return true
		}
	}
	return false
}
