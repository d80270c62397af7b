package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes are part of the wire
// format and must never change.
var (
	// ErrUnauthorized means the signer may not perform the operation.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means a record or configuration is missing.
	ErrNotFound = Register(3, "not found")

	// ErrInvalidMsg means a message failed validation.
	ErrInvalidMsg = Register(4, "invalid message")

	// ErrInvalidModel means stored or decoded data is inconsistent.
	ErrInvalidModel = Register(5, "invalid model")

	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that correct wiring never reaches.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	ErrInvalidState = Register(10, "invalid state")

	// ErrInsufficientAmount means a wallet or escrow holds too little.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	// ErrInvalidAmount means an amount is zero, negative or malformed.
	ErrInvalidAmount = Register(13, "invalid amount")

	ErrInvalidInput = Register(14, "invalid input")

	// ErrOverflow means a balance would exceed the supported range.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase means the store failed or returned unreadable data.
	ErrDatabase = Register(17, "database")

	// ErrPanic is produced by Recover only. Its message may leak
	// internals and is masked outside debug mode.
	ErrPanic = Register(111222, "panic")
)

// usedCodes maps every registered code to its root error. Code 1 is kept
// for internal errors.
var usedCodes = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a new root error. It panics when code is taken, so
// call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := usedCodes[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	usedCodes[code] = e
	return e
}

// Error is a root error: a stable ABCI code with a short description.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is e or wraps e. A nil e matches only nil
// errors, including typed nil pointers.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	return findCause(err, func(c error) bool { return c == e }) != nil
}

func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	val := reflect.ValueOf(err)
	return val.Kind() == reflect.Ptr && val.IsNil()
}

// Wrap annotates err with description. It returns nil for a nil err, so
// it can wrap the result of a call unconditionally. The innermost wrap
// records the stack trace.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Format supports %s, %v with the first frame and %+v with the full stack.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	fmt.Fprint(s, e.Error())
	if verb != 'v' {
		return
	}
	st := stackTrace(e)
	switch {
	case len(st) == 0:
	case s.Flag('+'):
		fmt.Fprintf(s, "\n%+v", st)
	default:
		fmt.Fprintf(s, " [%v]", st[0])
	}
}

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// deferred directly by the function whose panics it should catch.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

type stackTracer interface {
	error
	StackTrace() errors.StackTrace
}

// stackTrace returns the stack recorded by the first Wrap of err, or nil.
func stackTrace(err error) errors.StackTrace {
	if st, ok := findCause(err, func(c error) bool {
		_, ok := c.(stackTracer)
		return ok
	}).(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}
