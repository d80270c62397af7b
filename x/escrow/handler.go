package escrow

import (
	"encoding/json"
	"strconv"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createEscrowCost         int64 = 300
	depositEscrowCost        int64 = 50
	setBeneficiaryEscrowCost int64 = 50
	releaseEscrowCost        int64 = 0
)

// JobKey is the tag key carrying the job identifier of a delivered
// escrow message.
const JobKey = "job"

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authorizer, bank Transferer) {
	r.Handle(&CreateMsg{}, CreateEscrowHandler{auth: auth, bank: bank})
	r.Handle(&DepositMsg{}, DepositEscrowHandler{auth: auth, bank: bank})
	r.Handle(&SetBeneficiaryMsg{}, SetBeneficiaryHandler{auth: auth, bank: bank})
	r.Handle(&ReleaseMsg{}, ReleaseEscrowHandler{auth: auth, bank: bank})
}

// controller loads the configuration stored in db and builds the state
// machine with it.
func controller(db ledger.ReadOnlyKVStore, auth x.Authorizer, bank Transferer) (*Controller, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return NewController(conf, auth, bank, NewStoreFromConf(conf)), nil
}

func jobTags(jobID string) []common.KVPair {
	return []common.KVPair{{Key: []byte(JobKey), Value: []byte(jobID)}}
}

// CreateEscrowHandler opens an escrow for a job.
type CreateEscrowHandler struct {
	auth x.Authorizer
	bank Transferer
}

var _ ledger.Handler = CreateEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateEscrowHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := controller(db, h.auth, h.bank); err != nil {
		return nil, errors.Wrapf(err, "job %q", msg.JobID)
	}
	return &ledger.CheckResult{GasAllocated: createEscrowCost}, nil
}

// Deliver writes the escrow record.
func (h CreateEscrowHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctrl, err := controller(db, h.auth, h.bank)
	if err != nil {
		return nil, errors.Wrapf(err, "job %q", msg.JobID)
	}
	if err := ctrl.Create(ctx, db, msg.JobID, msg.Employer, msg.Asset); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: []byte(msg.JobID), Tags: jobTags(msg.JobID)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateEscrowHandler) validate(ctx ledger.Context, tx ledger.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.Verify(ctx, msg.Employer) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "job %q: employer %s", msg.JobID, msg.Employer)
	}
	return &msg, nil
}

// DepositEscrowHandler moves funds from the employer into custody.
type DepositEscrowHandler struct {
	auth x.Authorizer
	bank Transferer
}

var _ ledger.Handler = DepositEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DepositEscrowHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: depositEscrowCost}, nil
}

// Deliver moves the funds and updates the balance.
func (h DepositEscrowHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, ctrl, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	amount, err := msg.ParsedAmount()
	if err != nil {
		return nil, err
	}
	if err := ctrl.Deposit(ctx, db, msg.JobID, msg.From, amount); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: []byte(msg.JobID), Tags: jobTags(msg.JobID)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DepositEscrowHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*DepositMsg, *Controller, error) {
	var msg DepositMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	amount, err := msg.ParsedAmount()
	if err != nil {
		return nil, nil, err
	}
	if !amount.IsPositive() {
		return nil, nil, errors.Wrapf(errors.ErrInvalidAmount, "job %q: amount must be positive", msg.JobID)
	}
	ctrl, err := controller(db, h.auth, h.bank)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "job %q", msg.JobID)
	}
	if !h.auth.Verify(ctx, msg.From) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "job %q: depositor %s", msg.JobID, msg.From)
	}
	e, err := ctrl.Record(db, msg.JobID)
	if err != nil {
		return nil, nil, err
	}
	if !msg.From.Equals(e.Employer) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "job %q: depositor is not the employer", msg.JobID)
	}
	return &msg, ctrl, nil
}

// SetBeneficiaryHandler names the receiver of an escrow.
type SetBeneficiaryHandler struct {
	auth x.Authorizer
	bank Transferer
}

var _ ledger.Handler = SetBeneficiaryHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h SetBeneficiaryHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: setBeneficiaryEscrowCost}, nil
}

// Deliver updates the record.
func (h SetBeneficiaryHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, ctrl, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := ctrl.SetBeneficiary(ctx, db, msg.JobID, msg.Beneficiary); err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: []byte(msg.JobID), Tags: jobTags(msg.JobID)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h SetBeneficiaryHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*SetBeneficiaryMsg, *Controller, error) {
	var msg SetBeneficiaryMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ctrl, err := controller(db, h.auth, h.bank)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "job %q", msg.JobID)
	}
	if err := employerSigned(ctx, db, h.auth, ctrl, msg.JobID); err != nil {
		return nil, nil, err
	}
	return &msg, ctrl, nil
}

// ReleaseEscrowHandler pays out an escrow.
type ReleaseEscrowHandler struct {
	auth x.Authorizer
	bank Transferer
}

var _ ledger.Handler = ReleaseEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ReleaseEscrowHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &ledger.CheckResult{GasAllocated: releaseEscrowCost}, nil
}

// Deliver moves the escrow balance to the beneficiary. The paid amount
// is returned as data.
func (h ReleaseEscrowHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, ctrl, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	paid, err := ctrl.Release(ctx, db, msg.JobID)
	if err != nil {
		return nil, err
	}
	return &ledger.DeliverResult{Data: []byte(paid.String()), Tags: jobTags(msg.JobID)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ReleaseEscrowHandler) validate(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ReleaseMsg, *Controller, error) {
	var msg ReleaseMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	ctrl, err := controller(db, h.auth, h.bank)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "job %q", msg.JobID)
	}
	if err := employerSigned(ctx, db, h.auth, ctrl, msg.JobID); err != nil {
		return nil, nil, err
	}
	return &msg, ctrl, nil
}

// employerSigned ensures the job exists and that its stored employer
// authorized the call.
func employerSigned(ctx ledger.Context, db ledger.ReadOnlyKVStore, auth x.Authorizer, ctrl *Controller, jobID string) error {
	e, err := ctrl.Record(db, jobID)
	if err != nil {
		return err
	}
	if !auth.Verify(ctx, e.Employer) {
		return errors.Wrapf(errors.ErrUnauthorized, "job %q: employer signature required, signed by %q", jobID, x.MainSigner(ctx, auth))
	}
	return nil
}

// RegisterQuery exposes escrow records under "/escrows", balances under
// "/escrows/balance" and retention heights under "/escrows/retention".
// The query data is the job identifier.
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/escrows", ledger.QueryHandlerFunc(queryRecord))
	qr.Register("/escrows/balance", ledger.QueryHandlerFunc(queryBalance))
	qr.Register("/escrows/retention", ledger.QueryHandlerFunc(queryRetention))
}

func queryStore(db ledger.ReadOnlyKVStore) Store {
	conf, err := loadConf(db)
	if err != nil {
		conf = DefaultConfiguration()
	}
	return NewStoreFromConf(conf)
}

func queryRecord(db ledger.ReadOnlyKVStore, data []byte) ([]ledger.Model, error) {
	jobID := string(data)
	e, err := queryStore(db).Record(db, jobID)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, nil
	case err != nil:
		return nil, err
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "job %q: %s", jobID, err)
	}
	return []ledger.Model{ledger.Pair(recordKey(jobID), raw)}, nil
}

func queryBalance(db ledger.ReadOnlyKVStore, data []byte) ([]ledger.Model, error) {
	jobID := string(data)
	amount, err := queryStore(db).Balance(db, jobID)
	if err != nil {
		return nil, err
	}
	return []ledger.Model{ledger.Pair(balanceKey(jobID), []byte(amount.String()))}, nil
}

func queryRetention(db ledger.ReadOnlyKVStore, data []byte) ([]ledger.Model, error) {
	jobID := string(data)
	until, err := queryStore(db).Retention(db, jobID)
	if err != nil {
		return nil, err
	}
	return []ledger.Model{ledger.Pair(retentionKey(jobID), []byte(strconv.FormatInt(until, 10)))}, nil
}
