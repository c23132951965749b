// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/jito-foundation/ncn-template-sub000/kv"
	"github.com/jito-foundation/ncn-template-sub000/log"
	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

func fatal(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".org.ncn")
	}
	return ""
}

func initLogger(ctx *cli.Context) {
	level := log.LevelFromVerbosity(ctx.Int(verbosityFlag.Name))
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetRootHandler(log.NewTerminalHandler(os.Stderr, level, true))
	} else {
		log.SetRootHandler(log.NewLogfmtHandler(os.Stderr, level))
	}
}

func loadEpochConfig(ctx *cli.Context) error {
	if path := ctx.String(configFileFlag.Name); path != "" {
		if err := ncn.LoadConfigFile(path); err != nil {
			return errors.WithMessage(err, "load config file")
		}
	}
	ncn.LockConfig()
	return nil
}

func parseNcnID(ctx *cli.Context) (ncn.Pubkey, error) {
	raw := ctx.String(ncnFlag.Name)
	if raw == "" {
		return ncn.Pubkey{}, errors.New("the --ncn flag is required")
	}
	id, err := ncn.ParsePubkey(raw)
	if err != nil {
		return ncn.Pubkey{}, errors.WithMessage(err, "parse --ncn")
	}
	return id, nil
}

func openStore(ctx *cli.Context) (kv.Store, error) {
	dir := ctx.String(dataDirFlag.Name)
	if dir == "" {
		return nil, errors.New("unable to resolve data directory")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create data dir")
	}
	return kv.OpenStore(filepath.Join(dir, "records.db"), ctx.Int(cacheFlag.Name))
}

func startAPIServer(addr string, handler http.HandlerFunc) (*http.Server, string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, "", errors.WithMessage(err, "listen API addr")
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		_ = srv.Serve(listener)
	}()
	return srv, "http://" + listener.Addr().String() + "/", nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		logger.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
