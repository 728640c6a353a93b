// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/inconshreveable/log15"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
	log       = log15.New()
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
		Name:      "randperm",
		Usage:     "generate pseudorandom permutations in constant space",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags: []cli.Flag{
			sizeFlag,
			seedFlag,
			roundsFlag,
			limitFlag,
			verbosityFlag,
		},
		Action: printAction,
		Commands: []cli.Command{
			{
				Name:  "verify",
				Usage: "exhaustively check bijectivity and measure cycle-walk cost (needs size/8 bytes of memory)",
				Flags: []cli.Flag{
					sizeFlag,
					seedFlag,
					roundsFlag,
					jobsFlag,
					metricsAddrFlag,
					verbosityFlag,
				},
				Action: verifyAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printAction(ctx *cli.Context) error {
	initLogger(ctx)

	p, err := makePermutation(ctx)
	if err != nil {
		return err
	}

	limit := ctx.Uint64(limitFlag.Name)
	if limit == 0 || limit > p.Len() {
		limit = p.Len()
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	var printed uint64
	for v := range p.Values() {
		if printed == limit {
			break
		}
		fmt.Fprintln(w, v)
		printed++
	}
	return nil
}
