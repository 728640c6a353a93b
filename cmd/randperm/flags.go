// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/randperm/permute"
)

var (
	sizeFlag = cli.Uint64Flag{
		Name:  "size",
		Usage: "size of the permutation domain [0, size)",
	}
	seedFlag = cli.Uint64Flag{
		Name:  "seed",
		Usage: "seed selecting the permutation; omit to draw one from system entropy",
	}
	roundsFlag = cli.IntFlag{
		Name:  "rounds",
		Value: permute.DefaultRounds,
		Usage: "number of Feistel rounds per cipher invocation",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Usage: "print only the first limit elements",
	}
	jobsFlag = cli.IntFlag{
		Name:  "jobs",
		Usage: "number of verification workers (defaults to all CPUs)",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "serve prometheus metrics on this address while verifying",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: int(log15.LvlInfo),
		Usage: "log verbosity (0-4)",
	}
)
