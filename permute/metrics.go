// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package permute

import "github.com/vechain/randperm/metrics"

var (
	metricLookupCount = metrics.LazyLoadCounter("permutation_lookup_count")
	metricWalkSteps   = metrics.LazyLoadHistogram("permutation_walk_steps", metrics.BucketWalkSteps)
)
