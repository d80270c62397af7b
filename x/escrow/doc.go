/*
Package escrow implements a per job escrow ledger.

An employer creates an escrow for a job identifier, naming the asset it is
denominated in. Only the employer may deposit funds, which are moved into
the custodial account of the ledger, and only the employer may name the
beneficiary and release the held balance to them.

The balance is kept separately from the record. Release zeroes the stored
balance before asking the transfer primitive to pay out, so a reentrant
release observes an empty escrow and fails with ErrNothingToRelease.

Every mutating call extends the retention window of the job entries. Records
and balances are never deleted: a released escrow stays at zero and may be
funded again.
*/
package escrow
