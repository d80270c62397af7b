package cash

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/coin"
	"github.com/kazitrust/ledger/errors"
)

const walletPrefix = "cash:"

func walletKey(owner ledger.Identity, asset ledger.Asset) []byte {
	return []byte(walletPrefix + string(owner) + ":" + string(asset))
}

// Controller moves and issues funds between wallets.
type Controller struct{}

// NewController returns a wallet controller.
func NewController() Controller {
	return Controller{}
}

// Balance returns how much of the asset the owner holds. Unknown wallets
// hold nothing.
func (Controller) Balance(db ledger.ReadOnlyKVStore, owner ledger.Identity, asset ledger.Asset) (math.Int, error) {
	raw, err := db.Get(walletKey(owner, asset))
	if err != nil {
		return coin.Zero(), errors.Wrapf(errors.ErrDatabase, "wallet %s: %s", owner, err)
	}
	return coin.Decode(raw)
}

// Balances returns all non empty balances of the owner, keyed by asset.
func (c Controller) Balances(db ledger.ReadOnlyKVStore, owner ledger.Identity) (map[ledger.Asset]math.Int, error) {
	prefix := []byte(walletPrefix + string(owner) + ":")
	it, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "wallet %s: %s", owner, err)
	}
	defer it.Close()

	res := make(map[ledger.Asset]math.Int)
	for it.Valid() {
		amount, err := coin.Decode(it.Value())
		if err != nil {
			return nil, err
		}
		if !amount.IsZero() {
			asset := strings.TrimPrefix(string(it.Key()), string(prefix))
			res[ledger.Asset(asset)] = amount
		}
		if err := it.Next(); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "wallet %s: %s", owner, err)
		}
	}
	return res, nil
}

// Transfer moves a positive amount of the asset from one wallet to
// another. The sender must hold at least the amount.
func (c Controller) Transfer(db ledger.KVStore, asset ledger.Asset, from, to ledger.Identity, amount math.Int) error {
	if amount.IsNil() || !amount.IsPositive() {
		return errors.Wrap(errors.ErrInvalidAmount, "non-positive transfer")
	}
	if err := asset.Validate(); err != nil {
		return err
	}
	have, err := c.Balance(db, from, asset)
	if err != nil {
		return err
	}
	if have.LT(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "wallet %s holds %s %s", from, have, asset)
	}
	if from.Equals(to) {
		return nil
	}
	rest, err := coin.Sub(have, amount)
	if err != nil {
		return err
	}
	got, err := c.Balance(db, to, asset)
	if err != nil {
		return err
	}
	total, err := coin.Add(got, amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", to)
	}
	// both values are computed before anything is written
	if err := c.save(db, from, asset, rest); err != nil {
		return err
	}
	return c.save(db, to, asset, total)
}

// Issue adds the amount to the wallet. It is used at genesis only.
func (c Controller) Issue(db ledger.KVStore, to ledger.Identity, asset ledger.Asset, amount math.Int) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if err := asset.Validate(); err != nil {
		return err
	}
	if amount.IsNil() || amount.IsNegative() {
		return errors.Wrap(errors.ErrInvalidAmount, "negative issue")
	}
	got, err := c.Balance(db, to, asset)
	if err != nil {
		return err
	}
	total, err := coin.Add(got, amount)
	if err != nil {
		return errors.Wrapf(err, "wallet %s", to)
	}
	return c.save(db, to, asset, total)
}

func (Controller) save(db ledger.KVStore, owner ledger.Identity, asset ledger.Asset, amount math.Int) error {
	raw, err := coin.Encode(amount)
	if err != nil {
		return err
	}
	if err := db.Set(walletKey(owner, asset), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "wallet %s: %s", owner, err)
	}
	return nil
}

// prefixEnd returns the smallest key greater than every key starting
// with prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
