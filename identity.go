package ledger

import (
	"regexp"

	"github.com/kazitrust/ledger/errors"
	"github.com/stellar/go/strkey"
	"golang.org/x/crypto/blake2b"
)

// Identity is a Stellar account address (strkey encoded ed25519 public key,
// starting with G) of a party that can authorize an action or hold funds.
// The zero value means the identity is not set.
type Identity string

// Validate returns an error if the identity is not a valid account address.
func (i Identity) Validate() error {
	if i == "" {
		return errors.Wrap(errors.ErrEmpty, "identity")
	}
	if _, err := strkey.Decode(strkey.VersionByteAccountID, string(i)); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "identity %q: %s", string(i), err)
	}
	return nil
}

// PublicKey returns the raw ed25519 public key this identity encodes.
func (i Identity) PublicKey() ([]byte, error) {
	raw, err := strkey.Decode(strkey.VersionByteAccountID, string(i))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "identity %q: %s", string(i), err)
	}
	return raw, nil
}

// Equals checks if two identities are the same
func (i Identity) Equals(o Identity) bool {
	return i == o
}

// IsSet returns true if the identity holds any value.
func (i Identity) IsSet() bool {
	return i != ""
}

func (i Identity) String() string {
	if i == "" {
		return "(nil)"
	}
	return string(i)
}

// CustodyIdentity derives a deterministic account address from the given
// seed. There is no private key for such an account, funds sent there can be
// moved only by the extension that owns the seed.
func CustodyIdentity(seed string) Identity {
	h := blake2b.Sum256([]byte("custody/" + seed))
	addr, err := strkey.Encode(strkey.VersionByteAccountID, h[:])
	if err != nil {
		// Encoding a 32 byte payload never fails.
		panic(err)
	}
	return Identity(addr)
}

var isAsset = regexp.MustCompile(`^[A-Z0-9]{3,12}$`).MatchString

// Asset identifies a fungible token type, for example XLM or KES.
type Asset string

// Validate returns an error if the asset ticker is malformed.
func (a Asset) Validate() error {
	if !isAsset(string(a)) {
		return errors.Wrapf(errors.ErrInvalidInput, "asset %q", string(a))
	}
	return nil
}
