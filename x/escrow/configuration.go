package escrow

import (
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/kazitrust/ledger/gconf"
)

// CreatePolicy decides what happens when an escrow is created for a job
// that already has a record.
type CreatePolicy string

const (
	// PolicyOverwrite replaces the existing record and resets the balance.
	// The new employer need not be the previous one. Funds already held
	// for the job stay in custody, unattached to any escrow.
	PolicyOverwrite CreatePolicy = "overwrite"
	// PolicyReject refuses to create an escrow for a known job.
	PolicyReject CreatePolicy = "reject"
)

const (
	// DefaultRetentionThreshold is the remaining window below which
	// retention gets extended.
	DefaultRetentionThreshold int64 = 100
	// DefaultRetentionExtendTo is the window retention is extended to.
	DefaultRetentionExtendTo int64 = 5000
)

// Configuration of the escrow extension, kept in gconf under this
// package name.
type Configuration struct {
	// Custody is the account holding escrowed funds.
	Custody            ledger.Identity `json:"custody"`
	CreatePolicy       CreatePolicy    `json:"create_policy"`
	RetentionThreshold int64           `json:"retention_threshold"`
	RetentionExtendTo  int64           `json:"retention_extend_to"`
}

// DefaultConfiguration returns the configuration used when genesis does
// not declare one.
func DefaultConfiguration() Configuration {
	return Configuration{
		Custody:            ledger.CustodyIdentity(packageName),
		CreatePolicy:       PolicyOverwrite,
		RetentionThreshold: DefaultRetentionThreshold,
		RetentionExtendTo:  DefaultRetentionExtendTo,
	}
}

const packageName = "escrow"

// Validate returns an error if the configuration cannot be used.
func (c *Configuration) Validate() error {
	if err := c.Custody.Validate(); err != nil {
		return errors.Wrap(err, "custody")
	}
	switch c.CreatePolicy {
	case PolicyOverwrite, PolicyReject:
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unknown create policy %q", c.CreatePolicy)
	}
	if c.RetentionThreshold < 0 {
		return errors.Wrap(errors.ErrInvalidInput, "negative retention threshold")
	}
	if c.RetentionExtendTo <= c.RetentionThreshold {
		return errors.Wrap(errors.ErrInvalidInput, "retention must be extended beyond the threshold")
	}
	return nil
}

// loadConf returns the stored configuration.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, packageName, &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
