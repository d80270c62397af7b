package cash

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/coin"
	"github.com/kazitrust/ledger/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
type GenesisAccount struct {
	Address ledger.Identity `json:"address"`
	Asset   ledger.Asset    `json:"asset"`
	Amount  string          `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts ledger.Options, kv ledger.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cash genesis: %s", err)
	}
	control := NewController()
	for i, acct := range accts {
		amount, err := coin.ParseAmount(acct.Amount)
		if err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if err := control.Issue(kv, acct.Address, acct.Asset, amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
