// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ncn

// Epoch is a discrete, sequentially numbered consensus period.
type Epoch uint64

// Slot is the monotonically increasing tick counter of the substrate.
type Slot uint64

// Capacity constants of the consensus engine.
// Per-epoch collections are growable but validated against these worst-case
// bounds, so callers keep deterministic memory limits.
const (
	MaxOperators     = 256 // operator snapshots / live votes per epoch
	MaxVaultEntries  = 64  // supported mints and registered vaults
	MaxBallotTallies = 256 // distinct ballots, bounded by operator count
)
