package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is the ABCI code of a successful response.
	SuccessABCICode = 0

	// Errors without a registered code are reported as internal, with a
	// fixed log unless running in debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log to put in an ABCI response for err.
//
// Registered errors keep their code and message. Anything else, and any
// recovered panic, is an internal error whose message is only revealed in
// debug mode, where the log is formatted with %+v and carries a stack
// trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode, ErrPanic.Is(err):
		return internalABCICode, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the first error in the cause chain that
// carries one.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	if c, ok := findCause(err, func(e error) bool {
		_, ok := e.(coder)
		return ok
	}).(coder); ok {
		return c.ABCICode()
	}
	return internalABCICode
}

// findCause walks the cause chain of err and returns the first error
// accepted by match, or nil.
func findCause(err error, match func(error) bool) error {
	for err != nil {
		if match(err) {
			return err
		}
		c, ok := err.(causer)
		if !ok {
			return nil
		}
		err = c.Cause()
	}
	return nil
}

// ABCIError rebuilds an error from the code and log of an ABCI response.
// Registered codes map back to their canonical error, so a client can
// test the result with e.g. ErrUnauthorized.Is. Only clients need this.
func ABCIError(code uint32, log string) error {
	if e, ok := usedCodes[code]; ok && e != nil {
		return Wrap(e, log)
	}
	return Wrap(&Error{code: code, desc: "unknown"}, log)
}
