package escrow

import (
	"encoding/binary"

	"cosmossdk.io/math"
	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/coin"
	"github.com/kazitrust/ledger/errors"
)

// Store persists escrow records and balances, addressed by job
// identifier.
type Store interface {
	// Record returns ErrNotFound if the job has no record.
	Record(db ledger.ReadOnlyKVStore, jobID string) (*Escrow, error)
	// SaveRecord overwrites unconditionally.
	SaveRecord(db ledger.KVStore, jobID string, e *Escrow) error
	// Balance returns zero for unknown jobs.
	Balance(db ledger.ReadOnlyKVStore, jobID string) (math.Int, error)
	// SaveBalance overwrites unconditionally.
	SaveBalance(db ledger.KVStore, jobID string, amount math.Int) error
	// ExtendRetention pushes the retention window of the job entries.
	ExtendRetention(ctx ledger.Context, db ledger.KVStore, jobID string) error
	// Retention returns the height the job entries are kept until, or
	// zero if retention was never set.
	Retention(db ledger.ReadOnlyKVStore, jobID string) (int64, error)
}

const (
	recordPrefix    = "esc:"
	balancePrefix   = "escbal:"
	retentionPrefix = "escttl:"
)

func recordKey(jobID string) []byte    { return []byte(recordPrefix + jobID) }
func balanceKey(jobID string) []byte   { return []byte(balancePrefix + jobID) }
func retentionKey(jobID string) []byte { return []byte(retentionPrefix + jobID) }

// KVStore is the Store implementation over a ledger.KVStore.
type KVStore struct {
	threshold int64
	extendTo  int64
}

var _ Store = (*KVStore)(nil)

// NewStore returns a store that extends retention to extendTo blocks
// whenever less than threshold blocks remain.
func NewStore(threshold, extendTo int64) *KVStore {
	return &KVStore{threshold: threshold, extendTo: extendTo}
}

// NewStoreFromConf returns a store using the retention values of the
// configuration.
func NewStoreFromConf(conf Configuration) *KVStore {
	return NewStore(conf.RetentionThreshold, conf.RetentionExtendTo)
}

func (s *KVStore) Record(db ledger.ReadOnlyKVStore, jobID string) (*Escrow, error) {
	raw, err := db.Get(recordKey(jobID))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "job %q: %s", jobID, err)
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "job %q", jobID)
	}
	var e Escrow
	if err := e.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "job %q: %s", jobID, err)
	}
	return &e, nil
}

func (s *KVStore) SaveRecord(db ledger.KVStore, jobID string, e *Escrow) error {
	if err := e.Validate(); err != nil {
		return errors.Wrapf(err, "job %q", jobID)
	}
	raw, err := e.Marshal()
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "job %q: %s", jobID, err)
	}
	if err := db.Set(recordKey(jobID), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "job %q: %s", jobID, err)
	}
	return nil
}

func (s *KVStore) Balance(db ledger.ReadOnlyKVStore, jobID string) (math.Int, error) {
	raw, err := db.Get(balanceKey(jobID))
	if err != nil {
		return coin.Zero(), errors.Wrapf(errors.ErrDatabase, "job %q: %s", jobID, err)
	}
	amount, err := coin.Decode(raw)
	if err != nil {
		return coin.Zero(), errors.Wrapf(err, "job %q", jobID)
	}
	return amount, nil
}

func (s *KVStore) SaveBalance(db ledger.KVStore, jobID string, amount math.Int) error {
	raw, err := coin.Encode(amount)
	if err != nil {
		return errors.Wrapf(err, "job %q", jobID)
	}
	if err := db.Set(balanceKey(jobID), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "job %q: %s", jobID, err)
	}
	return nil
}

// ExtendRetention moves the retention window of both the record and the
// balance of the job to height+extendTo, if less than threshold blocks
// of the current window remain.
func (s *KVStore) ExtendRetention(ctx ledger.Context, db ledger.KVStore, jobID string) error {
	height, ok := ledger.GetHeight(ctx)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidState, "job %q: no block height in context", jobID)
	}
	until, err := s.Retention(db, jobID)
	if err != nil {
		return err
	}
	if until-height >= s.threshold {
		return nil
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(height+s.extendTo))
	if err := db.Set(retentionKey(jobID), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "job %q: %s", jobID, err)
	}
	return nil
}

func (s *KVStore) Retention(db ledger.ReadOnlyKVStore, jobID string) (int64, error) {
	raw, err := db.Get(retentionKey(jobID))
	if err != nil {
		return 0, errors.Wrapf(errors.ErrDatabase, "job %q: %s", jobID, err)
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInvalidModel, "job %q: retention of %d bytes", jobID, len(raw))
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}
