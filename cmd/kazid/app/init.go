package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/app"
	"github.com/kazitrust/ledger/commands/server"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/x/cash"
	"github.com/kazitrust/ledger/x/escrow"
	"github.com/stellar/go/keypair"
	abci "github.com/tendermint/tendermint/abci/types"
)

// DefaultAsset is funded at genesis when no asset is given.
const DefaultAsset = "KES"

// genesisSupply is credited to the generated development account.
const genesisSupply = "123456789"

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// Arguments are an optional asset and an optional account address.
// Without an address a new key is generated and its seed printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	asset := ledger.Asset(DefaultAsset)
	if len(args) > 0 {
		asset = ledger.Asset(args[0])
		if err := asset.Validate(); err != nil {
			return nil, err
		}
	}

	var addr ledger.Identity
	if len(args) > 1 {
		addr = ledger.Identity(args[1])
		if err := addr.Validate(); err != nil {
			return nil, err
		}
	} else {
		// if no address provided, auto-generate one
		// and print out its secret seed
		id, secret, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = id
		fmt.Println(secret)
	}

	conf := escrow.DefaultConfiguration()
	state := struct {
		Conf map[string]escrow.Configuration `json:"conf"`
		Cash []cash.GenesisAccount            `json:"cash"`
	}{
		Conf: map[string]escrow.Configuration{"escrow": conf},
		Cash: []cash.GenesisAccount{
			{Address: addr, Asset: asset, Amount: genesisSupply},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "kazi.db")
	}

	application, err := Application("kazi", Stack(), app.TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}

type output struct {
	Address ledger.Identity `json:"address"`
	Seed    string          `json:"seed"`
}

// GenerateCoinKey returns the identity of a fresh key pair, along
// with a json representation of the key. You can give coins to this
// identity and import the seed in a wallet to use them.
func GenerateCoinKey() (ledger.Identity, string, error) {
	kp, err := keypair.Random()
	if err != nil {
		return "", "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	out := output{Address: ledger.Identity(kp.Address()), Seed: kp.Seed()}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	return out.Address, string(keys), nil
}
