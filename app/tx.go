package app

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/x/cash"
	"github.com/kazitrust/ledger/x/escrow"
	"github.com/kazitrust/ledger/x/sigs"
	amino "github.com/tendermint/go-amino"
)

// Tx is the transaction accepted by the ledger: a single message and
// the signatures authorizing it.
type Tx struct {
	Msg        ledger.Msg           `json:"msg"`
	Signatures []*sigs.StdSignature `json:"signatures"`
}

var _ ledger.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the single message carried by the transaction.
func (tx *Tx) GetMsg() (ledger.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes that every signer signs: the amino
// encoding of the message alone.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	bz, err := TxCodec.MarshalBinaryBare(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidMsg, err.Error())
	}
	return bz, nil
}

// MakeCodec returns an amino codec that knows every message handled
// by the ledger.
func MakeCodec() *amino.Codec {
	cdc := amino.NewCodec()
	cdc.RegisterInterface((*ledger.Msg)(nil), nil)
	escrow.RegisterAmino(cdc)
	cash.RegisterAmino(cdc)
	return cdc
}

// TxCodec serializes transactions of this application.
var TxCodec = MakeCodec()

// EncodeTx serializes a transaction so it can be broadcast.
func EncodeTx(tx *Tx) ([]byte, error) {
	bz, err := TxCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return bz, nil
}

// TxDecoder parses transaction bytes encoded with EncodeTx.
func TxDecoder(bz []byte) (ledger.Tx, error) {
	if len(bz) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction")
	}
	var tx Tx
	if err := TxCodec.UnmarshalBinaryBare(bz, &tx); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot decode transaction: %s", err)
	}
	return &tx, nil
}

var _ ledger.TxDecoder = TxDecoder
