package ledgertest

import (
	"github.com/kazitrust/ledger"
	"github.com/stellar/go/keypair"
)

// NewKey returns a fresh random Stellar key pair. It panics if the
// system randomness source fails.
func NewKey() *keypair.Full {
	kp, err := keypair.Random()
	if err != nil {
		panic(err)
	}
	return kp
}

// NewIdentity returns the account identity of a fresh random key pair.
func NewIdentity() ledger.Identity {
	return ledger.Identity(NewKey().Address())
}

// Identity returns the account identity of the given key pair.
func Identity(kp keypair.KP) ledger.Identity {
	return ledger.Identity(kp.Address())
}
