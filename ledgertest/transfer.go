package ledgertest

import (
	"cosmossdk.io/math"
	"github.com/kazitrust/ledger"
)

// Transfer is a single recorded call to Transfers.
type Transfer struct {
	Asset  ledger.Asset
	From   ledger.Identity
	To     ledger.Identity
	Amount math.Int
}

// Transfers is a token transfer primitive that only records what it
// was asked to move. Set Err to make every call fail. OnTransfer, if
// set, is called before recording and its error is returned, which
// allows simulating reentrant callers.
type Transfers struct {
	Err        error
	OnTransfer func(db ledger.KVStore, t Transfer) error
	Calls      []Transfer
}

// Transfer records the call and returns the configured error.
func (tr *Transfers) Transfer(db ledger.KVStore, asset ledger.Asset, from, to ledger.Identity, amount math.Int) error {
	t := Transfer{Asset: asset, From: from, To: to, Amount: amount}
	if tr.OnTransfer != nil {
		if err := tr.OnTransfer(db, t); err != nil {
			return err
		}
	}
	if tr.Err != nil {
		return tr.Err
	}
	tr.Calls = append(tr.Calls, t)
	return nil
}
