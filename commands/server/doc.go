/*
Package server implements the init and start subcommands shared by the
node binaries: init adds the application state to a tendermint genesis
file, start serves an ABCI application over a socket.
*/
package server
