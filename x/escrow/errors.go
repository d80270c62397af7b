package escrow

import (
	"github.com/kazitrust/ledger/errors"
)

// escrow takes 1010-1020
var (
	// ErrBeneficiaryUnset is returned when funds are released before a
	// beneficiary was named.
	ErrBeneficiaryUnset = errors.Register(1010, "beneficiary not set")

	// ErrNothingToRelease is returned when the escrow balance is zero.
	ErrNothingToRelease = errors.Register(1011, "nothing to release")

	// ErrTransferFailed is returned when the transfer primitive rejected
	// the movement of funds.
	ErrTransferFailed = errors.Register(1012, "transfer failed")
)
