// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/jito-foundation/ncn-template-sub000/metrics"
)

var (
	metricVotesCast        = metrics.LazyLoadCounter("votes_cast_count")
	metricConsensusReached = metrics.LazyLoadCounter("consensus_reached_count")
	metricTieBreakersSet   = metrics.LazyLoadCounter("tie_breaker_set_count")
	metricEpochsClosed     = metrics.LazyLoadCounter("epochs_closed_count")
	metricEpochsLive       = metrics.LazyLoadGauge("epochs_live_gauge")
)
