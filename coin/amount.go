/*
Package coin provides the amount arithmetic shared by all extensions.

Amounts are arbitrary precision integers bounded to the signed 128 bit
range. Every arithmetic helper checks the bound and fails with
errors.ErrOverflow instead of wrapping around.
*/
package coin

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/kazitrust/ledger/errors"
)

// MaxBits is the largest bit length of an amount magnitude. Anything
// longer does not fit into a signed 128 bit integer.
const MaxBits = 127

// Zero returns a zero amount. Use it instead of math.Int{} which holds
// no value and panics on use.
func Zero() math.Int {
	return math.ZeroInt()
}

// NewAmount creates an amount from a native integer.
func NewAmount(v int64) math.Int {
	return math.NewInt(v)
}

// ParseAmount reads a base 10 representation of an amount.
func ParseAmount(raw string) (math.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Zero(), errors.Wrap(errors.ErrEmpty, "amount")
	}
	v, ok := math.NewIntFromString(raw)
	if !ok {
		return Zero(), errors.Wrapf(errors.ErrInvalidAmount, "cannot parse %q", raw)
	}
	if err := CheckRange(v); err != nil {
		return Zero(), err
	}
	return v, nil
}

// CheckRange returns an error if the amount does not fit into the
// supported range.
func CheckRange(v math.Int) error {
	if v.IsNil() {
		return errors.Wrap(errors.ErrInvalidAmount, "nil amount")
	}
	if v.BigInt().BitLen() > MaxBits {
		return errors.Wrapf(errors.ErrOverflow, "amount %s exceeds %d bits", v, MaxBits)
	}
	return nil
}

// Add returns a+b or ErrOverflow if the result is out of range.
func Add(a, b math.Int) (math.Int, error) {
	if err := CheckRange(a); err != nil {
		return Zero(), err
	}
	if err := CheckRange(b); err != nil {
		return Zero(), err
	}
	sum := a.Add(b)
	if err := CheckRange(sum); err != nil {
		return Zero(), err
	}
	return sum, nil
}

// Sub returns a-b or ErrOverflow if the result is out of range.
func Sub(a, b math.Int) (math.Int, error) {
	if err := CheckRange(a); err != nil {
		return Zero(), err
	}
	if err := CheckRange(b); err != nil {
		return Zero(), err
	}
	diff := a.Sub(b)
	if err := CheckRange(diff); err != nil {
		return Zero(), err
	}
	return diff, nil
}

// Encode serializes an amount for storage.
func Encode(v math.Int) ([]byte, error) {
	if err := CheckRange(v); err != nil {
		return nil, err
	}
	raw, err := v.Marshal()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidAmount, err.Error())
	}
	return raw, nil
}

// Decode reads an amount serialized with Encode. An empty value is
// decoded as zero, so a missing entry reads as an empty balance.
func Decode(raw []byte) (math.Int, error) {
	if len(raw) == 0 {
		return Zero(), nil
	}
	var v math.Int
	if err := v.Unmarshal(raw); err != nil {
		return Zero(), errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	if err := CheckRange(v); err != nil {
		return Zero(), err
	}
	return v, nil
}
