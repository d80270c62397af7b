/*

Package ledger defines interfaces used throughout the escrow ledger, such as:
storage, transactions, handlers, identities and context helpers.

Extensions live under x/ and only depend on the interfaces declared here,
the app package glues them together into a Tendermint ABCI application.

*/

package ledger
