// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"net"
	"net/http"
	"sync"

	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/randperm/metrics"
	"github.com/vechain/randperm/permute"
)

func initLogger(ctx *cli.Context) {
	logLevel := ctx.Int(verbosityFlag.Name)
	log15.Root().SetHandler(log15.LvlFilterHandler(log15.Lvl(logLevel), log15.StderrHandler))
}

func makePermutation(ctx *cli.Context) (*permute.Permutation, error) {
	size := ctx.Uint64(sizeFlag.Name)
	if size < 1 {
		cli.ShowAppHelp(ctx)
		return nil, errors.Errorf("-%s must be at least 1", sizeFlag.Name)
	}
	rounds := ctx.Int(roundsFlag.Name)

	if ctx.IsSet(seedFlag.Name) {
		return permute.New(size, ctx.Uint64(seedFlag.Name), rounds)
	}

	p, err := permute.NewRandomized(size, rounds)
	if err != nil {
		return nil, err
	}
	log.Info("drew random seed", "seed", p.Seed())
	return p, nil
}

func startMetricsServer(addr string) (func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	router := http.NewServeMux()
	router.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: router}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		srv.Serve(listener)
	}()

	log.Info("metrics server started", "addr", "http://"+listener.Addr().String()+"/metrics")
	return func() {
		srv.Close()
		wg.Wait()
	}, nil
}
