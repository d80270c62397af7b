package app

import (
	"encoding/json"
	"fmt"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the state side of abci.Application: genesis,
// block boundaries, commits and queries. BaseApp adds the tx side.
//
// The ABCI calls that take no user input (InitChain, BeginBlock, Commit,
// Info) have no way to report an error and panic instead, which halts
// the node before it can diverge from its peers.
type StoreApp struct {
	name   string
	logger log.Logger
	debug  bool

	store       *CommitStore
	initializer ledger.Initializer
	queryRouter ledger.QueryRouter

	// chainID is empty until genesis has been loaded.
	chainID string

	// baseContext lives as long as the app, blockContext is rebuilt
	// from it on every BeginBlock.
	baseContext  ledger.Context
	blockContext ledger.Context
}

// NewStoreApp loads the latest state of store. It panics if the state
// cannot be read.
func NewStoreApp(name string, store ledger.CommitKVStore, queryRouter ledger.QueryRouter, baseContext ledger.Context) *StoreApp {
	cs, err := NewCommitStore(store)
	if err != nil {
		panic(err)
	}
	chainID, err := loadChainID(cs.DeliverStore())
	if err != nil {
		panic(err)
	}
	if chainID != "" {
		baseContext = ledger.WithChainID(baseContext, chainID)
	}
	info, err := cs.CommitInfo()
	if err != nil {
		panic(err)
	}

	s := &StoreApp{
		name:         name,
		store:        cs,
		queryRouter:  queryRouter,
		chainID:      chainID,
		baseContext:  baseContext,
		blockContext: ledger.WithHeight(baseContext, info.Version),
	}
	return s.WithLogger(log.NewNopLogger())
}

// WithInit sets the initializer run on InitChain.
func (s *StoreApp) WithInit(init ledger.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug reveals full error details, stack traces included, in all
// responses. Never enable it on a public node.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the logger of the app and of every tx context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.baseContext = ledger.WithLogger(s.baseContext, logger)
	s.blockContext = ledger.WithLogger(s.blockContext, logger)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

func (s *StoreApp) Logger() log.Logger {
	return s.logger
}

// BlockContext is the context of the block being processed.
func (s *StoreApp) BlockContext() ledger.Context {
	return s.blockContext
}

func (s *StoreApp) DeliverStore() ledger.CacheableKVStore {
	return s.store.DeliverStore()
}

func (s *StoreApp) CheckStore() ledger.CacheableKVStore {
	return s.store.CheckStore()
}

// loadGenesis binds the app to chainID and runs the initializer over
// the app_state of the genesis file. It only ever runs once per chain.
func (s *StoreApp) loadGenesis(appState []byte, chainID string) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrInvalidState, "genesis already loaded for chain %q", s.chainID)
	}
	if len(appState) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing from genesis.json, run `kazid init` first")
	}
	var opts ledger.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "app_state: %s", err)
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.baseContext = ledger.WithChainID(s.baseContext, chainID)
	s.blockContext = ledger.WithChainID(s.blockContext, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// Info reports the last committed height and app hash, so tendermint
// knows which blocks to replay after a restart.
func (s *StoreApp) Info(req abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          ledger.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption is not supported, all configuration lives in the store.
func (s *StoreApp) SetOption(req abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not implemented"}
}

// InitChain loads the genesis file.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.loadGenesis(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	s.logger.Info("genesis loaded", "chain_id", req.ChainId)
	return abci.ResponseInitChain{}
}

// BeginBlock rebuilds the block context from the header.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := ledger.WithHeader(s.baseContext, req.Header)
	ctx = ledger.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = ledger.WithBlockTime(ctx, req.Header.GetTime())
	return abci.ResponseBeginBlock{}
}

// EndBlock does nothing, the validator set never changes.
func (s *StoreApp) EndBlock(req abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the deliver state and resets the check state.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query reads the last committed state. Path selects the handler, e.g.
// /escrows/balance, and Data is its argument, e.g. a job id.
//
// Key and Value of the response are both a marshalled ResultSet holding
// the same number of entries, so a query may return zero or more models.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	qh := s.queryRouter.Handler(req.Path)
	if qh == nil {
		return ledger.QueryError(errors.Wrapf(errors.ErrNotFound, "no query handler for %q", req.Path), s.debug)
	}
	info, err := s.store.CommitInfo()
	if err != nil {
		return ledger.QueryError(err, s.debug)
	}
	models, err := qh.Query(s.store.Committed(), req.Data)
	if err != nil {
		return ledger.QueryError(err, s.debug)
	}
	key, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return ledger.QueryError(err, s.debug)
	}
	value, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return ledger.QueryError(err, s.debug)
	}
	return abci.ResponseQuery{Key: key, Value: value, Height: info.Version}
}
