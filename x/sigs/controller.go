package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/stellar/go/keypair"
)

// SignCodeV1 opens every signed payload.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// SignedTx is a transaction carrying the signatures checked by Decorator.
type SignedTx interface {
	// GetSignBytes is the canonical encoding covered by every signature.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// VerifyTxSignatures verifies every signature of tx and bumps each
// signer's sequence. Signers are returned in signature order.
func VerifyTxSignatures(db ledger.KVStore, tx SignedTx, chainID string) ([]ledger.Identity, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	var signers []ledger.Identity
	for i, sig := range tx.GetSignatures() {
		who, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, who)
	}
	return signers, nil
}

// VerifySignature checks a single signature over payload and, when it
// holds, consumes the signer's sequence.
func VerifySignature(db ledger.KVStore, sig *StdSignature, payload []byte, chainID string) (ledger.Identity, error) {
	if sig == nil {
		return "", errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if err := sig.Validate(); err != nil {
		return "", err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return "", err
	}
	kp, err := keypair.Parse(sig.Signer.String())
	if err != nil {
		return "", errors.Wrapf(errors.ErrUnauthorized, "signer %s: %s", sig.Signer, err)
	}
	if kp.Verify(digest, sig.Signature) != nil {
		return "", errors.Wrapf(errors.ErrUnauthorized, "bad signature from %s", sig.Signer)
	}
	if err := checkAndIncrementSequence(db, sig.Signer, sig.Sequence); err != nil {
		return "", err
	}
	return sig.Signer, nil
}

// BuildSignBytes returns the sha512 digest that is signed for payload:
//
//	SignCodeV1 | len(chainID) | chainID | seq (8 bytes, big endian) | payload
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !ledger.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "chain id %q", chainID)
	}

	buf := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+8+len(payload))
	buf = append(buf, SignCodeV1...)
	buf = append(buf, byte(len(chainID)))
	buf = append(buf, chainID...)
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))
	buf = append(buf, seqBytes[:]...)
	buf = append(buf, payload...)

	digest := sha512.Sum512(buf)
	return digest[:], nil
}

// BuildSignBytesTx is BuildSignBytes over the sign bytes of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx for chainID at sequence seq.
func SignTx(signer *keypair.Full, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	digest, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	raw, err := signer.Sign(digest)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return &StdSignature{
		Signer:    ledger.Identity(signer.Address()),
		Sequence:  seq,
		Signature: raw,
	}, nil
}
