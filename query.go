package ledger

import (
	"fmt"
	"strings"
)

// Model is a single key/value result of a query.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for one path. It only ever sees the
// committed state.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, data []byte) ([]Model, error)
}

// QueryHandlerFunc lets a plain function serve as a QueryHandler.
type QueryHandlerFunc func(db ReadOnlyKVStore, data []byte) ([]Model, error)

func (f QueryHandlerFunc) Query(db ReadOnlyKVStore, data []byte) ([]Model, error) {
	return f(db, data)
}

// QueryRegister is exposed by every extension that serves queries.
type QueryRegister func(QueryRouter)

// QueryRouter maps query paths such as "/escrows/balance" to handlers.
// Paths match exactly, there is no prefix routing.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, reg := range regs {
		reg(r)
	}
}

// Register binds h to path. It panics when path does not start with a
// slash or is already taken, both being programming errors.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if !strings.HasPrefix(path, "/") {
		panic(fmt.Sprintf("query path must start with a slash: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path already registered: %q", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
