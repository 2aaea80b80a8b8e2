// Copyright (c) 2018 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 64,
		Usage: "megabytes of ram allocated to the database cache",
	}

	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to the YAML deployment file",
	}
	devFlag = cli.BoolFlag{
		Name:  "dev",
		Usage: "apply the built-in development deployment, administered by --caller",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8679",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration longer than this threshold in milliseconds will be logged",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	enableWritesFlag = cli.BoolFlag{
		Name:  "enable-writes",
		Usage: "mount the mutating API endpoints, callers are trusted",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Usage: "admin service listening address, disabled when empty",
	}

	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address of the account issuing the operation",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "address of the account owner",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "address of the reward token mint",
	}
	indexFlag = cli.StringFlag{
		Name:  "index",
		Value: "0",
		Usage: "pool index (0-255)",
	}
	apyFlag = cli.StringFlag{
		Name:  "apy",
		Usage: "annual percentage yield of the pool (0-255)",
	}
	minStakeFlag = cli.StringFlag{
		Name:  "min-stake",
		Value: "0",
		Usage: "minimum principal of a stake",
	}
	lockFlag = cli.StringFlag{
		Name:  "lock",
		Usage: "lock duration in seconds or as a duration like 720h",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "token amount, decimal or 0x prefixed hex",
	}
	positionFlag = cli.StringFlag{
		Name:  "position",
		Usage: "address of the stake position",
	}
)
