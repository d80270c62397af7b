package utils

import (
	"time"

	"github.com/kazitrust/ledger"
)

// Logging writes one line per processed tx with its path, duration and
// outcome. Failed checks are logged at info, failed deliveries at error.
// Successful checks are logged at debug, so a busy mempool stays quiet.
type Logging struct{}

var _ ledger.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var note string
	if err == nil {
		note = res.Log
	}
	logOutcome(ctx, tx, start, note, err, true)
	return res, err
}

func (Logging) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var note string
	if err == nil {
		note = res.Log
	}
	logOutcome(ctx, tx, start, note, err, false)
	return res, err
}

// logOutcome always emits a line, even with an empty note, as the
// path and duration are useful on their own.
func logOutcome(ctx ledger.Context, tx ledger.Tx, start time.Time, note string, err error, check bool) {
	logger := ledger.GetLogger(ctx).With(
		"path", ledger.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	switch {
	case err != nil && check:
		logger.Info(note, "err", err)
	case err != nil:
		logger.Error(note, "err", err)
	case check:
		logger.Debug(note)
	default:
		logger.Info(note)
	}
}
