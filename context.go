/*
Block level data travels from the app through every decorator down to
the handlers inside a context.Context. This file owns the keys for that
data. Extensions such as sigs keep their own private keys.

Every value T stored here comes with a pair of functions

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics when the value is already present, so no inner layer can
rewrite the height, time or chain a handler runs against.
*/

package ledger

import (
	"context"
	"fmt"
	"regexp"
	"time"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is the standard context; the helpers below give it meaning.
type Context = context.Context

type contextKey int

const (
	contextKeyHeader contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
	contextKeyBlockTime
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID accepts 6 to 20 characters of letters, digits, _ and -.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// setOnce stores val under key, panicking if the key holds a value.
func setOnce(ctx Context, key contextKey, name string, val interface{}) Context {
	if ctx.Value(key) != nil {
		panic(fmt.Sprintf("%s already set", name))
	}
	return context.WithValue(ctx, key, val)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return setOnce(ctx, contextKeyHeader, "header", header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	val, ok := ctx.Value(contextKeyHeader).(abci.Header)
	return val, ok
}

func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, contextKeyHeight, "height", height)
}

func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime stores t in UTC. Retention periods are measured against it.
func WithBlockTime(ctx Context, t time.Time) Context {
	return setOnce(ctx, contextKeyBlockTime, "block time", t.UTC())
}

func BlockTime(ctx Context) (time.Time, bool) {
	val, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	return val, ok
}

// WithChainID panics on an invalid chain ID as well as on a second call.
// Signatures are bound to this value.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain ID: %q", chainID))
	}
	return setOnce(ctx, contextKeyChainID, "chain ID", chainID)
}

// GetChainID panics if no chain ID was set. The app always sets one
// before any tx is processed.
func GetChainID(ctx Context) string {
	val, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain ID is not in context")
	}
	return val
}

// WithLogger replaces the logger of ctx. Unlike the block values it may
// be set any number of times.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo returns a context whose logger carries keyvals on every line.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if val, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return val
	}
	return DefaultLogger
}
