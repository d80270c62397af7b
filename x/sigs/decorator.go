package sigs

import (
	"strconv"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
)

// signatureVerifyCost is charged in CheckTx for every verified signature.
const signatureVerifyCost = 500

// Decorator verifies the signatures of a tx, bumps the sequence of every
// signer and exposes the signers to the rest of the stack through
// Authenticate.
type Decorator struct {
	allowMissingSigs bool
}

var _ ledger.Decorator = Decorator{}

// NewDecorator rejects any tx that carries no valid signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets unsigned txs through with no signers in the
// context. Any signature present must still be valid.
func (d Decorator) AllowMissingSigs() Decorator {
	return Decorator{allowMissingSigs: true}
}

func (d Decorator) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	ctx, signed, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(signed * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, store, tx)
}

// authenticate returns ctx extended with the verified signers and their
// count.
func (d Decorator) authenticate(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (ledger.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		if d.allowMissingSigs {
			return ctx, 0, nil
		}
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "tx does not support signatures")
	}
	signers, err := VerifyTxSignatures(store, stx, ledger.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}

// RegisterQuery serves the next expected sequence of a signer under
// /auth. The query data is the signer address.
func RegisterQuery(qr ledger.QueryRouter) {
	qr.Register("/auth", ledger.QueryHandlerFunc(querySequence))
}

func querySequence(db ledger.ReadOnlyKVStore, data []byte) ([]ledger.Model, error) {
	signer := ledger.Identity(data)
	if err := signer.Validate(); err != nil {
		return nil, err
	}
	seq, err := NextSequence(db, signer)
	if err != nil {
		return nil, err
	}
	return []ledger.Model{ledger.Pair(data, []byte(strconv.FormatInt(seq, 10)))}, nil
}
