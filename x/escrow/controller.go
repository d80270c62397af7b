package escrow

import (
	"cosmossdk.io/math"
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/coin"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/x"
)

// Transferer moves funds between accounts. A call either fully succeeds
// or fails without any effect.
type Transferer interface {
	Transfer(db ledger.KVStore, asset ledger.Asset, from, to ledger.Identity, amount math.Int) error
}

// Controller is the escrow state machine. Every mutating method leaves
// the store untouched when it returns an error, with the exception of
// Release (see there).
type Controller struct {
	conf  Configuration
	auth  x.Authorizer
	bank  Transferer
	store Store
}

// NewController returns a controller using the given collaborators.
func NewController(conf Configuration, auth x.Authorizer, bank Transferer, store Store) *Controller {
	return &Controller{
		conf:  conf,
		auth:  auth,
		bank:  bank,
		store: store,
	}
}

// Create writes a new record for the job with an empty beneficiary and a
// zero balance. The employer must authorize the call. What happens to an
// existing record depends on the create policy.
func (c *Controller) Create(ctx ledger.Context, db ledger.KVStore, jobID string, employer ledger.Identity, asset ledger.Asset) error {
	if err := ValidateJobID(jobID); err != nil {
		return err
	}
	if !c.auth.Verify(ctx, employer) {
		return errors.Wrapf(errors.ErrUnauthorized, "job %q: employer %s", jobID, employer)
	}
	logger := ledger.GetLogger(ctx).With("module", packageName, "job", jobID)

	switch prev, err := c.store.Record(db, jobID); {
	case errors.ErrNotFound.Is(err):
	case err != nil:
		return err
	case c.conf.CreatePolicy == PolicyReject:
		return errors.Wrapf(errors.ErrDuplicate, "job %q: escrow exists", jobID)
	default:
		orphan, err := c.store.Balance(db, jobID)
		if err != nil {
			return err
		}
		if !orphan.IsZero() {
			logger.Info("overwriting funded escrow",
				"previous_employer", prev.Employer, "asset", prev.Asset, "orphaned", orphan.String())
		}
	}

	e := &Escrow{Employer: employer, Asset: asset}
	if err := c.store.SaveRecord(db, jobID, e); err != nil {
		return err
	}
	if err := c.store.SaveBalance(db, jobID, coin.Zero()); err != nil {
		return err
	}
	c.extendRetention(ctx, db, jobID)
	logger.Info("escrow created", "employer", employer, "asset", asset)
	return nil
}

// Deposit moves the amount from the employer into custody and adds it to
// the job balance. The new total is computed before any funds move, so
// an overflowing deposit transfers nothing.
func (c *Controller) Deposit(ctx ledger.Context, db ledger.KVStore, jobID string, from ledger.Identity, amount math.Int) error {
	if !c.auth.Verify(ctx, from) {
		return errors.Wrapf(errors.ErrUnauthorized, "job %q: depositor %s", jobID, from)
	}
	e, err := c.store.Record(db, jobID)
	if err != nil {
		return err
	}
	if !from.Equals(e.Employer) {
		return errors.Wrapf(errors.ErrUnauthorized, "job %q: depositor is not the employer", jobID)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "job %q: amount must be positive", jobID)
	}
	if err := coin.CheckRange(amount); err != nil {
		return errors.Wrapf(err, "job %q", jobID)
	}

	balance, err := c.store.Balance(db, jobID)
	if err != nil {
		return err
	}
	total, err := coin.Add(balance, amount)
	if err != nil {
		return errors.Wrapf(err, "job %q", jobID)
	}

	if err := c.bank.Transfer(db, e.Asset, from, c.conf.Custody, amount); err != nil {
		return errors.Wrapf(ErrTransferFailed, "job %q: deposit: %s", jobID, err)
	}
	if err := c.store.SaveBalance(db, jobID, total); err != nil {
		return err
	}
	c.extendRetention(ctx, db, jobID)
	ledger.GetLogger(ctx).Info("escrow funded",
		"module", packageName, "job", jobID, "amount", amount.String(), "balance", total.String())
	return nil
}

// SetBeneficiary names the identity that receives the funds on release.
// Authorization is checked against the stored employer. An already
// assigned beneficiary is replaced.
func (c *Controller) SetBeneficiary(ctx ledger.Context, db ledger.KVStore, jobID string, beneficiary ledger.Identity) error {
	e, err := c.store.Record(db, jobID)
	if err != nil {
		return err
	}
	if !c.auth.Verify(ctx, e.Employer) {
		return errors.Wrapf(errors.ErrUnauthorized, "job %q: employer signature required", jobID)
	}
	if err := beneficiary.Validate(); err != nil {
		return errors.Wrapf(err, "job %q: beneficiary", jobID)
	}

	e.Beneficiary = beneficiary
	if err := c.store.SaveRecord(db, jobID, e); err != nil {
		return err
	}
	c.extendRetention(ctx, db, jobID)
	ledger.GetLogger(ctx).Info("beneficiary assigned",
		"module", packageName, "job", jobID, "beneficiary", beneficiary)
	return nil
}

// Release pays the whole balance out to the beneficiary and returns the
// amount paid.
//
// The stored balance is zeroed before the transfer is requested. If the
// transfer fails afterwards the balance stays at zero while the funds
// are still in custody. This is reported with ErrTransferFailed and an
// error log entry flagged for reconciliation.
func (c *Controller) Release(ctx ledger.Context, db ledger.KVStore, jobID string) (math.Int, error) {
	e, err := c.store.Record(db, jobID)
	if err != nil {
		return coin.Zero(), err
	}
	if !c.auth.Verify(ctx, e.Employer) {
		return coin.Zero(), errors.Wrapf(errors.ErrUnauthorized, "job %q: employer signature required", jobID)
	}
	if !e.HasBeneficiary() {
		return coin.Zero(), errors.Wrapf(ErrBeneficiaryUnset, "job %q", jobID)
	}
	amount, err := c.store.Balance(db, jobID)
	if err != nil {
		return coin.Zero(), err
	}
	if !amount.IsPositive() {
		return coin.Zero(), errors.Wrapf(ErrNothingToRelease, "job %q", jobID)
	}

	if err := c.store.SaveBalance(db, jobID, coin.Zero()); err != nil {
		return coin.Zero(), err
	}
	if err := c.bank.Transfer(db, e.Asset, c.conf.Custody, e.Beneficiary, amount); err != nil {
		ledger.GetLogger(ctx).Error("release transfer failed after balance was zeroed",
			"module", packageName, "job", jobID, "amount", amount.String(),
			"asset", e.Asset, "beneficiary", e.Beneficiary, "reconcile", true, "err", err)
		return coin.Zero(), errors.Wrapf(ErrTransferFailed, "job %q: release: %s", jobID, err)
	}
	c.extendRetention(ctx, db, jobID)
	ledger.GetLogger(ctx).Info("escrow released",
		"module", packageName, "job", jobID, "amount", amount.String(), "beneficiary", e.Beneficiary)
	return amount, nil
}

// Balance returns the held amount, zero for unknown jobs.
func (c *Controller) Balance(db ledger.ReadOnlyKVStore, jobID string) (math.Int, error) {
	return c.store.Balance(db, jobID)
}

// Record returns the escrow record or ErrNotFound.
func (c *Controller) Record(db ledger.ReadOnlyKVStore, jobID string) (*Escrow, error) {
	return c.store.Record(db, jobID)
}

// extendRetention is best effort. A failure is logged and never undoes
// the operation that triggered it.
func (c *Controller) extendRetention(ctx ledger.Context, db ledger.KVStore, jobID string) {
	if err := c.store.ExtendRetention(ctx, db, jobID); err != nil {
		ledger.GetLogger(ctx).Error("cannot extend retention",
			"module", packageName, "job", jobID, "err", err)
	}
}
