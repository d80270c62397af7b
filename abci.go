package ledger

import (
	"github.com/kazitrust/ledger/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is what a Checker returns on success. Failures are
// reported through the error, never through the result.
type CheckResult struct {
	// Data is an optional machine readable return value.
	Data []byte
	// Log is an optional human readable note.
	Log string
	// GasAllocated is the upper bound of work this tx may perform.
	GasAllocated int64
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasAllocated}
}

// DeliverResult is what a Deliverer returns on success.
type DeliverResult struct {
	Data []byte
	Log  string
	// Tags are indexed by tendermint, so clients can search for the tx,
	// e.g. by action or escrow id.
	Tags []common.KVPair
}

func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags}
}

// CheckOrError builds the CheckTx response from a handler outcome.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverOrError builds the DeliverTx response from a handler outcome.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckTxError reports err in a CheckTx response. Unregistered errors are
// masked unless debug is set.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := errorInfo("cannot check tx", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

// DeliverTxError reports err in a DeliverTx response. Unregistered
// errors are masked unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := errorInfo("cannot deliver tx", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// QueryError reports err in a Query response.
func QueryError(err error, debug bool) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

func errorInfo(prefix string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, prefix + ": " + log
}
