package escrow

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ ledger.Initializer = Initializer{}

// FromGenesis stores the escrow configuration found under
// conf.escrow. Missing fields keep their default values.
func (Initializer) FromGenesis(opts ledger.Options, db ledger.KVStore) error {
	conf := DefaultConfiguration()
	return gconf.InitConfig(db, opts, packageName, &conf)
}
