package cash

import (
	"encoding/json"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authorizer, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// RegisterQuery will register wallets as "/wallets". The query data is
// the owner identity. All non empty balances of the owner are returned
// as a JSON object keyed by asset.
func RegisterQuery(qr ledger.QueryRouter) {
	control := NewController()
	qr.Register("/wallets", ledger.QueryHandlerFunc(func(db ledger.ReadOnlyKVStore, data []byte) ([]ledger.Model, error) {
		owner := ledger.Identity(data)
		if err := owner.Validate(); err != nil {
			return nil, err
		}
		balances, err := control.Balances(db, owner)
		if err != nil {
			return nil, err
		}
		if len(balances) == 0 {
			return nil, nil
		}
		raw, err := json.Marshal(balances)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
		}
		return []ledger.Model{ledger.Pair(data, raw)}, nil
	}))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authorizer
	control Controller
}

var _ ledger.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authorizer, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount, _ := msg.ParsedAmount()
	have, err := h.control.Balance(db, msg.Src, msg.Asset)
	if err != nil {
		return nil, err
	}
	if have.LT(amount) {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s", msg.Src)
	}
	return &ledger.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from sender to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	amount, _ := msg.ParsedAmount()
	if err := h.control.Transfer(db, msg.Asset, msg.Src, msg.Dest, amount); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h SendHandler) validate(ctx ledger.Context, tx ledger.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.Verify(ctx, msg.Src) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "wallet %s", msg.Src)
	}
	return &msg, nil
}
