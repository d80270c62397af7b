package gconf

import (
	"encoding/json"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
)

// ReadStore is the part of ledger.ReadOnlyKVStore that Load needs.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is the part of ledger.KVStore that Save needs.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

// Validator is implemented by every configuration object.
type Validator interface {
	Validate() error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db Store, pkg string, conf Validator) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := json.Marshal(conf)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "encode %s configuration: %s", pkg, err)
	}
	if err := db.Set(key(pkg), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "store %s configuration: %s", pkg, err)
	}
	return nil
}

// Load decodes the configuration of pkg into dst. It fails with
// ErrNotFound when none was saved.
func Load(db ReadStore, pkg string, dst interface{}) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrapf(errors.ErrDatabase, "read %s configuration: %s", pkg, err)
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "decode %s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig saves opts["conf"][pkg] as the configuration of pkg. conf
// holds the defaults and is saved unchanged when the genesis omits pkg.
func InitConfig(db Store, opts ledger.Options, pkg string, conf Validator) error {
	var section ledger.Options
	if err := opts.ReadOptions("conf", &section); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis conf: %s", err)
	}
	if err := section.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "genesis conf %s: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
