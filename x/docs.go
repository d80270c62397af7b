/*
Package x contains the extensions of the ledger and the interfaces
they share.

Extensions implement common functionality (Handler, Decorator,
Initializer, query handlers) and are combined together by the node to
construct an application:

  escrow  holds job funds until the employer releases them
  cash    keeps token wallets and moves funds between them
  sigs    verifies transaction signatures
  utils   generic decorators such as savepoints, logging and recovery

Extensions never call each other directly. They depend on the small
interfaces declared here and in their own packages, such as Authorizer
or escrow.Transferer, so each of them can be tested with doubles.
*/
package x
