package app

import (
	"testing"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/ledgertest"
	"github.com/kazitrust/ledger/x/cash"
	"github.com/kazitrust/ledger/x/escrow"
	"github.com/kazitrust/ledger/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxRoundTrip(t *testing.T) {
	kp := ledgertest.NewKey()
	employer := ledgertest.Identity(kp)

	msgs := map[string]ledger.Msg{
		"create":          &escrow.CreateMsg{JobID: "J1", Employer: employer, Asset: "KES"},
		"deposit":         &escrow.DepositMsg{JobID: "J1", From: employer, Amount: "100"},
		"set beneficiary": &escrow.SetBeneficiaryMsg{JobID: "J1", Beneficiary: ledgertest.NewIdentity()},
		"release":         &escrow.ReleaseMsg{JobID: "J1"},
		"send":            &cash.SendMsg{Src: employer, Dest: ledgertest.NewIdentity(), Asset: "KES", Amount: "5", Memo: "m"},
	}
	for name, msg := range msgs {
		t.Run(name, func(t *testing.T) {
			tx := &Tx{Msg: msg}
			sig, err := sigs.SignTx(kp, tx, "test-chain", 7)
			require.NoError(t, err)
			tx.Signatures = []*sigs.StdSignature{sig}

			bz, err := EncodeTx(tx)
			require.NoError(t, err)
			decoded, err := TxDecoder(bz)
			require.NoError(t, err)

			got, err := decoded.GetMsg()
			require.NoError(t, err)
			assert.Equal(t, msg, got)
			assert.Equal(t, msg.Path(), ledger.GetPath(decoded))

			// the decoded tx still carries a valid signature
			stx, ok := decoded.(sigs.SignedTx)
			require.True(t, ok)
			signBytes, err := stx.GetSignBytes()
			require.NoError(t, err)
			_, err = sigs.VerifySignature(memStore(), stx.GetSignatures()[0], signBytes, "test-chain")
			// the fresh store expects sequence 0
			assert.True(t, sigs.ErrInvalidSequence.Is(err))
		})
	}
}

func TestTxWithoutMsg(t *testing.T) {
	tx := &Tx{}
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrInvalidMsg.Is(err))
	_, err = tx.GetSignBytes()
	assert.True(t, errors.ErrInvalidMsg.Is(err))
	assert.Equal(t, "(missing)", ledger.GetPath(tx))
}

func TestTxDecoderErrors(t *testing.T) {
	_, err := TxDecoder(nil)
	assert.True(t, errors.ErrEmpty.Is(err))

	_, err = TxDecoder([]byte{0xff, 0xff, 0xff})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}
