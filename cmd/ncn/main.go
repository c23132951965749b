// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/jito-foundation/ncn-template-sub000/api"
	"github.com/jito-foundation/ncn-template-sub000/engine"
	"github.com/jito-foundation/ncn-template-sub000/log"
	"github.com/jito-foundation/ncn-template-sub000/metrics"
	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/store"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "ncn",
		Usage:     "Stake-weighted consensus node",
		Copyright: "2025 Jito Foundation",
		Flags: []cli.Flag{
			ncnFlag,
			dataDirFlag,
			configFileFlag,
			cacheFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			pprofFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	if err := loadEpochConfig(ctx); err != nil {
		return err
	}

	ncnID, err := parseNcnID(ctx)
	if err != nil {
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { logger.Info("closing record database..."); db.Close() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	eng := engine.New(ncnID, store.New(db))

	handler := api.New(eng, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	srv, apiURL, err := startAPIServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); _ = srv.Shutdown(context.Background()) }()

	printStartupMessage(ncnID, ctx.String(dataDirFlag.Name), apiURL)

	<-handleExitSignal().Done()
	return nil
}

func printStartupMessage(ncnID ncn.Pubkey, dataDir, apiURL string) {
	fmt.Printf(`Starting %v
    Version     %v
    NCN         %v
    Data dir    %v
    API portal  %v
    Epochs      %v slots, stall after %v epochs, close after %v epochs
`,
		"ncn",
		fullVersion(),
		ncnID,
		dataDir,
		apiURL,
		ncn.SlotsPerEpoch(), ncn.EpochsBeforeStall(), ncn.EpochsAfterConsensusBeforeClose())
}
