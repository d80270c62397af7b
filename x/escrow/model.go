package escrow

import (
	"regexp"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

var isJobID = regexp.MustCompile(`^[a-zA-Z0-9_]{1,32}$`).MatchString

// ValidateJobID checks that the job identifier can be used as a key.
func ValidateJobID(jobID string) error {
	if jobID == "" {
		return errors.Wrap(errors.ErrEmpty, "job id")
	}
	if !isJobID(jobID) {
		return errors.Wrapf(errors.ErrInvalidInput, "job %q: invalid id", jobID)
	}
	return nil
}

// Escrow is the record kept for every job. Employer and Asset are set on
// creation and never change. Beneficiary is empty until assigned.
type Escrow struct {
	Employer    ledger.Identity `json:"employer"`
	Beneficiary ledger.Identity `json:"beneficiary,omitempty"`
	Asset       ledger.Asset    `json:"asset"`
}

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	if err := e.Employer.Validate(); err != nil {
		return errors.Wrap(err, "employer")
	}
	if e.Beneficiary.IsSet() {
		if err := e.Beneficiary.Validate(); err != nil {
			return errors.Wrap(err, "beneficiary")
		}
	}
	if err := e.Asset.Validate(); err != nil {
		return errors.Wrap(err, "asset")
	}
	return nil
}

// HasBeneficiary returns true once a beneficiary was assigned
func (e *Escrow) HasBeneficiary() bool {
	return e.Beneficiary.IsSet()
}

// Marshal serializes the record for storage
func (e *Escrow) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(e)
}

// Unmarshal reads a record serialized with Marshal
func (e *Escrow) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, e)
}

var cdc = amino.NewCodec()

// RegisterAmino registers all escrow messages with the transaction codec.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterConcrete(&CreateMsg{}, "escrow/create", nil)
	cdc.RegisterConcrete(&DepositMsg{}, "escrow/deposit", nil)
	cdc.RegisterConcrete(&SetBeneficiaryMsg{}, "escrow/set_beneficiary", nil)
	cdc.RegisterConcrete(&ReleaseMsg{}, "escrow/release", nil)
}
