/*
Package ledgertest provides test doubles and helpers for extension tests.

Nothing in this package should be imported by production code.
*/
package ledgertest
