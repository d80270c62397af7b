package sigs

import (
	"github.com/kazitrust/ledger/errors"
)

// x/sigs reserves 20 ~ 29.
var (
	// ErrInvalidSequence is returned when the signature sequence does not
	// match the next expected value of the signer.
	ErrInvalidSequence = errors.Register(20, "invalid sequence number")
)
