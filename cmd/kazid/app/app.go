/*
Package app links together all the various components
to construct the kazi escrow node.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/app"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/store/iavl"
	"github.com/kazitrust/ledger/x"
	"github.com/kazitrust/ledger/x/cash"
	"github.com/kazitrust/ledger/x/escrow"
	"github.com/kazitrust/ledger/x/sigs"
	"github.com/kazitrust/ledger/x/utils"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authorizer {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		// outside of recovery, so panics are counted as failures
		utils.NewMetrics(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce
		// even if the message fails
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching escrow and wallet messages.
// Escrowed funds are moved with the wallet controller.
func Router(authFn x.Authorizer) *app.Router {
	r := app.NewRouter()
	bank := cash.NewController()
	cash.RegisterRoutes(r, authFn, bank)
	escrow.RegisterRoutes(r, authFn, bank)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/escrows", "/wallets" and "/auth"
func QueryRouter() ledger.QueryRouter {
	r := ledger.NewQueryRouter()
	r.RegisterAll(
		escrow.RegisterQuery,
		cash.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack() ledger.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns everything that reads the genesis app_state.
func Initializers() ledger.Initializer {
	return ledger.ChainInitializers{
		escrow.Initializer{},
		cash.Initializer{},
	}
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h ledger.Handler,
	tx ledger.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {

	ctx := context.Background()
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), ctx).
		WithDebug(debug).
		WithInit(Initializers())
	return app.NewBaseApp(store, tx, h), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (ledger.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.MockCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}
