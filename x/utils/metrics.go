package utils

import (
	"strconv"
	"sync"
	"time"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	txTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kazi",
			Name:      "tx_total",
			Help:      "Processed transactions by phase, message path and ABCI code.",
		},
		[]string{"phase", "path", "code"},
	)
	txDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kazi",
			Name:      "tx_duration_seconds",
			Help:      "Time spent in the handler stack per transaction.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"phase", "path"},
	)

	metricsOnce sync.Once
)

// Metrics counts every tx passing through it, labelled with the phase
// (check or deliver), the message path and the resulting ABCI code, and
// observes how long the rest of the stack took. The collectors live in
// the default prometheus registry, served by `kazid start -metrics`.
type Metrics struct{}

var _ ledger.Decorator = Metrics{}

func NewMetrics() Metrics {
	metricsOnce.Do(func() {
		prometheus.MustRegister(txTotal, txDuration)
	})
	return Metrics{}
}

func (Metrics) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Checker) (*ledger.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	observe("check", ledger.GetPath(tx), start, err)
	return res, err
}

func (Metrics) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx, next ledger.Deliverer) (*ledger.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	observe("deliver", ledger.GetPath(tx), start, err)
	return res, err
}

func observe(phase, path string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	txTotal.WithLabelValues(phase, path, strconv.FormatUint(uint64(code), 10)).Inc()
	txDuration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
