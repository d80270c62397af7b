package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kazitrust/ledger"
	"github.com/kazitrust/ledger/cmd/kazid/app"
	"github.com/kazitrust/ledger/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome     = "home"
	flagLogLevel = "log_level"
	varHome      *string
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".kazi")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "minimal level of printed logs: debug, info, error or none")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("kazid")
	fmt.Println("        Kazi Trust escrow ledger node")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Initialize app options in genesis file")
	fmt.Println("start   Run the abci server")
	fmt.Println("version Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.kazi")
  -log_level string
        minimal level of printed logs (default "info")

start flags:
  -bind string
        address the abci server listens on (default "tcp://localhost:26658")
  -debug
        return full error details and stack traces
  -metrics string
        serve prometheus metrics on this address, e.g. :26660`)
}

func main() {
	flag.Parse()

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "kazi")
	opt, err := log.AllowLevel(*varLogLevel)
	if err != nil {
		fmt.Printf("Error: %s\n\n", err)
		helpMessage()
		os.Exit(1)
	}
	logger = log.NewFilter(logger, opt)

	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "version":
		fmt.Println(ledger.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
