package server

import (
	"context"
	"flag"
	"net/http"
	"time"

	"github.com/kazitrust/ledger/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagBind    = "bind"
	flagDebug   = "debug"
	flagMetrics = "metrics"
)

// Options are the settings an application is generated with.
type Options struct {
	Home   string
	Logger log.Logger
	Debug  bool
}

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags
type AppGenerator func(*Options) (abci.Application, error)

type startFlags struct {
	bind    string
	debug   bool
	metrics string
}

func parseFlags(args []string) (startFlags, error) {
	var f startFlags
	fs := flag.NewFlagSet("start", flag.ContinueOnError)
	fs.StringVar(&f.bind, flagBind, "tcp://localhost:26658", "address server listens on")
	fs.BoolVar(&f.debug, flagDebug, false, "call stack returned on error")
	fs.StringVar(&f.metrics, flagMetrics, "", "serve prometheus metrics on this address, e.g. :26660 (disabled if empty)")
	if err := fs.Parse(args); err != nil {
		return f, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return f, nil
}

// StartCmd initializes the application and serves it until the
// process is interrupted.
func StartCmd(gen AppGenerator, logger log.Logger, home string, args []string) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	app, err := gen(&Options{Home: home, Logger: logger, Debug: flags.debug})
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", flags.bind)
	svr, err := server.NewServer(flags.bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrHuman, "cannot start server: %s", err)
	}

	var metrics *http.Server
	if flags.metrics != "" {
		metrics = serveMetrics(flags.metrics, logger.With("module", "metrics"))
	}

	// TrapSignal exits the process once the callback returns.
	cmn.TrapSignal(logger, shutdown(svr, metrics, logger))
	select {}
}

// shutdown stops the metrics endpoint, if any, and then the ABCI server.
func shutdown(svr cmn.Service, metrics *http.Server, logger log.Logger) func() {
	return func() {
		logger.Info("Stopping ABCI app")
		if metrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metrics.Shutdown(ctx); err != nil {
				logger.Error("metrics shutdown", "err", err)
			}
		}
		if err := svr.Stop(); err != nil {
			logger.Error("abci server stop", "err", err)
		}
	}
}

// serveMetrics exposes the default prometheus registry on addr under
// /metrics until the returned server is shut down.
func serveMetrics(addr string, logger log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
	return srv
}
