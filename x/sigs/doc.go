/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain sequences for replay protection.

Signers are Stellar accounts. The account address is the ed25519 public
key, so a signature can be verified without any prior registration.
*/
package sigs
