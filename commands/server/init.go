package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/kazitrust/ledger/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	appStateKey = "app_state"
	flagForce   = "i"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd will add the application state to the genesis file
// that `tendermint init` created in the home directory.
// Existing app_state is only replaced when the -i flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	force := initFlags.Bool(flagForce, false, "ignore existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	genFile := filepath.Join(home, "config", "genesis.json")
	if !fileExists(genFile) {
		return errors.Wrapf(errors.ErrNotFound, "%s: run tendermint init first", genFile)
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}

	if err := addGenesisOptions(genFile, options, *force); err != nil {
		return err
	}
	logger.Info("App state set in genesis", "path", genFile)
	return nil
}

func fileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

func addGenesisOptions(filename string, options json.RawMessage, force bool) error {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return errors.Wrap(errors.ErrNotFound, err.Error())
	}

	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "%s: %s", filename, err)
	}

	if v, ok := doc[appStateKey]; ok && len(v) > 0 && string(v) != "null" && !force {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use -i to overwrite")
	}

	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
