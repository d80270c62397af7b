package sigs

import (
	"encoding/binary"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
)

// StdSignature is a signature of a single signer over a transaction.
type StdSignature struct {
	Signer    ledger.Identity `json:"signer"`
	Sequence  int64           `json:"sequence"`
	Signature []byte          `json:"signature"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if err := s.Signer.Validate(); err != nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signer")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

const sequencePrefix = "sigs:"

func sequenceKey(id ledger.Identity) []byte {
	return []byte(sequencePrefix + string(id))
}

// NextSequence returns the sequence the next signature of the signer
// must carry. Unknown signers start at zero.
func NextSequence(db ledger.ReadOnlyKVStore, id ledger.Identity) (int64, error) {
	raw, err := db.Get(sequenceKey(id))
	if err != nil {
		return 0, errors.Wrapf(errors.ErrDatabase, "signer %s: %s", id, err)
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidModel, "signer %s: sequence of %d bytes", id, len(raw))
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

// checkAndIncrementSequence fails if the given sequence is not the next
// expected one, otherwise it stores the increment.
func checkAndIncrementSequence(db ledger.KVStore, id ledger.Identity, expected int64) error {
	seq, err := NextSequence(db, id)
	if err != nil {
		return err
	}
	if seq != expected {
		return errors.Wrapf(ErrInvalidSequence, "signer %s: mismatch: got %d, expected %d", id, expected, seq)
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(seq+1))
	if err := db.Set(sequenceKey(id), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "signer %s: %s", id, err)
	}
	return nil
}
