/*
Package cash implements wallets holding fungible assets.

Every account has one balance per asset, kept under
"cash:<identity>:<asset>". The controller is the token transfer primitive
used by other extensions: a transfer either fully applies or fails leaving
both wallets untouched.
*/
package cash
