package app

import (
	"fmt"
	"regexp"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router sends each message to the handler registered for its exact path,
// in the manner of net/http.ServeMux.
type Router struct {
	routes map[string]ledger.Handler
}

var _ ledger.Registry = (*Router)(nil)
var _ ledger.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]ledger.Handler, 10),
	}
}

// Handle adds a new Handler for the given message type.
// Panics on invalid paths and on re-registration.
func (r *Router) Handle(m ledger.Msg, h ledger.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %T: %s", m, path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %T: %s", m, path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path.
// If no path is found, returns a noSuchPath Handler
// Always returns a non-nil Handler
func (r *Router) handler(m ledger.Msg) ledger.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNotFound error regardless of the arguments.
type notFoundHandler string

func (path notFoundHandler) Check(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}

func (path notFoundHandler) Deliver(ctx ledger.Context, store ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", path)
}
