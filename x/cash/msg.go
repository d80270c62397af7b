package cash

import (
	"cosmossdk.io/math"
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/coin"
	"github.com/kazitrust/ledger/errors"
	amino "github.com/tendermint/go-amino"
)

const pathSendMsg = "cash/send"

// SendMsg moves funds between two wallets.
type SendMsg struct {
	Src    ledger.Identity `json:"src"`
	Dest   ledger.Identity `json:"dest"`
	Asset  ledger.Asset    `json:"asset"`
	Amount string          `json:"amount"`
	Memo   string          `json:"memo,omitempty"`
}

var _ ledger.Msg = (*SendMsg)(nil)

const maxMemoSize = 128

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m SendMsg) Validate() error {
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if err := m.Asset.Validate(); err != nil {
		return err
	}
	amount, err := m.ParsedAmount()
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive send")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInvalidInput, "memo too long")
	}
	return nil
}

// ParsedAmount returns the amount sent.
func (m SendMsg) ParsedAmount() (math.Int, error) {
	return coin.ParseAmount(m.Amount)
}

// RegisterAmino registers all cash messages with the transaction codec.
func RegisterAmino(cdc *amino.Codec) {
	cdc.RegisterConcrete(&SendMsg{}, pathSendMsg, nil)
}
