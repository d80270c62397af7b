package escrow

import (
	"cosmossdk.io/math"
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/coin"
	"github.com/kazitrust/ledger/errors"
)

const (
	pathCreateMsg         = "escrow/create"
	pathDepositMsg        = "escrow/deposit"
	pathSetBeneficiaryMsg = "escrow/set_beneficiary"
	pathReleaseMsg        = "escrow/release"
)

// CreateMsg opens an escrow for a job.
type CreateMsg struct {
	JobID    string          `json:"job_id"`
	Employer ledger.Identity `json:"employer"`
	Asset    ledger.Asset    `json:"asset"`
}

var _ ledger.Msg = (*CreateMsg)(nil)

// Path returns the routing path for this message
func (CreateMsg) Path() string {
	return pathCreateMsg
}

// Validate makes sure that this is sensible
func (m CreateMsg) Validate() error {
	if err := ValidateJobID(m.JobID); err != nil {
		return err
	}
	if err := m.Employer.Validate(); err != nil {
		return errors.Wrapf(err, "job %q: employer", m.JobID)
	}
	if err := m.Asset.Validate(); err != nil {
		return errors.Wrapf(err, "job %q: asset", m.JobID)
	}
	return nil
}

// DepositMsg funds an escrow. Amount is a base 10 integer.
type DepositMsg struct {
	JobID  string          `json:"job_id"`
	From   ledger.Identity `json:"from"`
	Amount string          `json:"amount"`
}

var _ ledger.Msg = (*DepositMsg)(nil)

// Path returns the routing path for this message
func (DepositMsg) Path() string {
	return pathDepositMsg
}

// Validate makes sure that this is sensible. Non positive amounts are
// left to the controller so they fail with the same error everywhere.
func (m DepositMsg) Validate() error {
	if err := ValidateJobID(m.JobID); err != nil {
		return err
	}
	if err := m.From.Validate(); err != nil {
		return errors.Wrapf(err, "job %q: from", m.JobID)
	}
	if _, err := m.ParsedAmount(); err != nil {
		return err
	}
	return nil
}

// ParsedAmount returns the deposited amount.
func (m DepositMsg) ParsedAmount() (math.Int, error) {
	amount, err := coin.ParseAmount(m.Amount)
	if err != nil {
		return amount, errors.Wrapf(err, "job %q: amount", m.JobID)
	}
	return amount, nil
}

// SetBeneficiaryMsg names the receiver of the escrowed funds.
type SetBeneficiaryMsg struct {
	JobID       string          `json:"job_id"`
	Beneficiary ledger.Identity `json:"beneficiary"`
}

var _ ledger.Msg = (*SetBeneficiaryMsg)(nil)

// Path returns the routing path for this message
func (SetBeneficiaryMsg) Path() string {
	return pathSetBeneficiaryMsg
}

// Validate makes sure that this is sensible
func (m SetBeneficiaryMsg) Validate() error {
	if err := ValidateJobID(m.JobID); err != nil {
		return err
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrapf(err, "job %q: beneficiary", m.JobID)
	}
	return nil
}

// ReleaseMsg pays the escrow balance out to the beneficiary.
type ReleaseMsg struct {
	JobID string `json:"job_id"`
}

var _ ledger.Msg = (*ReleaseMsg)(nil)

// Path returns the routing path for this message
func (ReleaseMsg) Path() string {
	return pathReleaseMsg
}

// Validate makes sure that this is sensible
func (m ReleaseMsg) Validate() error {
	return ValidateJobID(m.JobID)
}
