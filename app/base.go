package app

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp completes StoreApp into a full abci.Application by decoding
// transactions and passing them through the handler stack.
type BaseApp struct {
	*StoreApp
	decoder ledger.TxDecoder
	handler ledger.Handler
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder ledger.TxDecoder, handler ledger.Handler) BaseApp {
	return BaseApp{StoreApp: store, decoder: decoder, handler: handler}
}

// CheckTx runs the tx against the check store, which is reset on every
// commit.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.prepare("check_tx", raw)
	if err != nil {
		return ledger.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return ledger.CheckOrError(res, err, b.debug)
}

// DeliverTx runs the tx against the deliver store. Its writes become
// part of the next committed state.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.prepare("deliver_tx", raw)
	if err != nil {
		return ledger.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return ledger.DeliverOrError(res, err, b.debug)
}

// prepare decodes raw and returns the block context annotated for this
// call. A panicking decoder is reported as ErrPanic.
func (b BaseApp) prepare(call string, raw []byte) (ctx ledger.Context, tx ledger.Tx, err error) {
	ctx = ledger.WithLogInfo(b.BlockContext(), "call", call)
	tx, err = b.decode(raw)
	if err != nil {
		ledger.GetLogger(ctx).Debug("cannot decode tx", "err", err, "size", len(raw))
		return ctx, nil, err
	}
	return ledger.WithLogInfo(ctx, "path", ledger.GetPath(tx)), tx, nil
}

func (b BaseApp) decode(raw []byte) (tx ledger.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
