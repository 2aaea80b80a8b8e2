// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	logLevel  *slog.LevelVar
	version   = "0.1.0"
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "farm"
	app.Usage = "Reward escrow staking ledger"
	app.Flags = []cli.Flag{
		dataDirFlag,
		cacheFlag,
		verbosityFlag,
		jsonLogsFlag,
	}
	app.Before = func(ctx *cli.Context) error {
		logLevel = initLogger(ctx)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "apply a deployment file to an empty ledger",
			Flags:  []cli.Flag{genesisFlag, devFlag, callerFlag},
			Action: initAction,
		},
		{
			Name:  "serve",
			Usage: "serve the ledger over HTTP",
			Flags: []cli.Flag{
				apiAddrFlag,
				apiCorsFlag,
				apiTimeoutFlag,
				apiSlowQueriesThresholdFlag,
				enableAPILogsFlag,
				enableWritesFlag,
				pprofFlag,
				enableMetricsFlag,
				metricsAddrFlag,
				adminAddrFlag,
			},
			Action: serveAction,
		},
		{
			Name:   "create-state",
			Usage:  "create the registry, administered by the caller",
			Flags:  []cli.Flag{callerFlag, mintFlag},
			Action: createStateAction,
		},
		{
			Name:   "create-pool",
			Usage:  "create a staking pool",
			Flags:  []cli.Flag{callerFlag, mintFlag, indexFlag, apyFlag, minStakeFlag, lockFlag},
			Action: createPoolAction,
		},
		{
			Name:   "fund",
			Usage:  "add tokens to the reward budget of a pool",
			Flags:  []cli.Flag{callerFlag, indexFlag, amountFlag},
			Action: fundAction,
		},
		{
			Name:   "withdraw",
			Usage:  "take unreserved reward budget back from a pool",
			Flags:  []cli.Flag{callerFlag, indexFlag, amountFlag},
			Action: withdrawAction,
		},
		{
			Name:   "stake",
			Usage:  "lock tokens in a pool",
			Flags:  []cli.Flag{callerFlag, indexFlag, amountFlag},
			Action: stakeAction,
		},
		{
			Name:   "cancel",
			Usage:  "return the principal of a position and release its reward",
			Flags:  []cli.Flag{callerFlag, positionFlag},
			Action: cancelAction,
		},
		{
			Name:   "claim",
			Usage:  "pay out principal and reward of a matured position",
			Flags:  []cli.Flag{callerFlag, positionFlag},
			Action: claimAction,
		},
		{
			Name:   "mint",
			Usage:  "issue reward tokens to an owner",
			Flags:  []cli.Flag{callerFlag, ownerFlag, amountFlag},
			Action: mintAction,
		},
		{
			Name:   "registry",
			Usage:  "show the registry",
			Action: registryAction,
		},
		{
			Name:   "pools",
			Usage:  "list pools",
			Action: poolsAction,
		},
		{
			Name:   "pool",
			Usage:  "show a pool",
			Flags:  []cli.Flag{indexFlag},
			Action: poolAction,
		},
		{
			Name:   "quote",
			Usage:  "compute the reward of a stake without placing it",
			Flags:  []cli.Flag{indexFlag, amountFlag},
			Action: quoteAction,
		},
		{
			Name:   "position",
			Usage:  "show a stake position",
			Flags:  []cli.Flag{positionFlag},
			Action: positionAction,
		},
		{
			Name:   "positions",
			Usage:  "list the positions of an owner",
			Flags:  []cli.Flag{ownerFlag},
			Action: positionsAction,
		},
		{
			Name:   "balance",
			Usage:  "show the wallet of an owner",
			Flags:  []cli.Flag{ownerFlag},
			Action: balanceAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
