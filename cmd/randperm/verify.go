// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/bits"
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/cheggaaa/pb.v1"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/randperm/metrics"
)

func verifyAction(ctx *cli.Context) error {
	initLogger(ctx)

	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		metrics.InitializePrometheusMetrics()
		stop, err := startMetricsServer(addr)
		if err != nil {
			return err
		}
		defer stop()
	}

	p, err := makePermutation(ctx)
	if err != nil {
		return err
	}

	jobs := ctx.Int(jobsFlag.Name)
	if jobs < 1 {
		jobs = runtime.NumCPU()
	}

	size := p.Len()
	seen := make([]uint64, (size+63)/64)

	bar := pb.New64(int64(size)).SetMaxWidth(90).Start()
	defer func() { bar.NotPrint = true }()

	var (
		totalSteps atomic.Uint64
		maxSteps   atomic.Uint64
		g          errgroup.Group
	)

	stride := (size + uint64(jobs) - 1) / uint64(jobs)
	for w := range jobs {
		begin := uint64(w) * stride
		end := min(begin+stride, size)
		if begin >= end {
			break
		}
		g.Go(func() error {
			var localSteps, localMax uint64
			for i := begin; i < end; i++ {
				v, steps, err := p.Lookup(i)
				if err != nil {
					return err
				}
				localSteps += uint64(steps)
				if uint64(steps) > localMax {
					localMax = uint64(steps)
				}
				mask := uint64(1) << (v & 63)
				if old := atomic.OrUint64(&seen[v>>6], mask); old&mask != 0 {
					return errors.Errorf("bijectivity broken: element %d reached twice", v)
				}
				bar.Increment()
			}
			totalSteps.Add(localSteps)
			for {
				cur := maxSteps.Load()
				if localMax <= cur || maxSteps.CompareAndSwap(cur, localMax) {
					break
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	bar.Finish()

	var got uint64
	for _, w := range seen {
		got += uint64(bits.OnesCount64(w))
	}
	if got != size {
		return errors.Errorf("bijectivity broken: %d of %d elements reached", got, size)
	}

	log.Info("bijectivity verified",
		"size", size,
		"seed", p.Seed(),
		"rounds", p.Rounds(),
		"avgWalk", fmt.Sprintf("%.3f", float64(totalSteps.Load())/float64(size)),
		"maxWalk", maxSteps.Load(),
	)
	return nil
}
