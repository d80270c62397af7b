/*
Package errors holds the registered root errors of the ledger and the
helpers to wrap and classify them.

Every failure a handler returns should wrap one of the root errors, either
one declared here or one registered by an extension (see x/escrow). The
code of the root error is what ends up in the ABCI response, so clients
can tell "not the employer" from "nothing to release" without parsing
logs. Errors that wrap no root error are reported as internal.

	errors.Wrapf(errors.ErrUnauthorized, "job %q", jobID)

The first Wrap in a chain records a stack trace. Formatting verbs:
	%s the message only
	%v the message and the [file:line] of the first wrap
	%+v the message and the full stack
*/
package errors
