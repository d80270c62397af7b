package x

import (
	"github.com/kazitrust/ledger"
)

// Authorizer answers whether an identity approved the running transaction.
// Controllers receive one at construction, which keeps them independent
// of how approval is proven (signatures, test doubles, contract calls).
type Authorizer interface {
	// Signers lists every identity that approved the call, in order.
	Signers(ledger.Context) []ledger.Identity
	// Verify reports whether id approved the call.
	Verify(ledger.Context, ledger.Identity) bool
}

// MultiAuth accepts an identity if any of its members does.
type MultiAuth struct {
	impls []Authorizer
}

var _ Authorizer = MultiAuth{}

// ChainAuth combines authorizers. Signers are reported in member order.
func ChainAuth(impls ...Authorizer) MultiAuth {
	return MultiAuth{impls: impls}
}

// Signers merges the members' signers, keeping the first occurrence of each.
func (m MultiAuth) Signers(ctx ledger.Context) []ledger.Identity {
	var all []ledger.Identity
	seen := make(map[ledger.Identity]struct{})
	for _, a := range m.impls {
		for _, id := range a.Signers(ctx) {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			all = append(all, id)
		}
	}
	return all
}

func (m MultiAuth) Verify(ctx ledger.Context, id ledger.Identity) bool {
	for _, a := range m.impls {
		if a.Verify(ctx, id) {
			return true
		}
	}
	return false
}

// MainSigner is the first signer of the call, or the empty identity.
func MainSigner(ctx ledger.Context, auth Authorizer) ledger.Identity {
	if ids := auth.Signers(ctx); len(ids) > 0 {
		return ids[0]
	}
	return ""
}
