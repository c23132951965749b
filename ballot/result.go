// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ballot

import (
	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

// ConsensusResult is the durable record of an epoch's outcome. It is written
// once, in the same transaction as the winning box transition, and outlives
// every other epoch-scoped record.
type ConsensusResult struct {
	Ncn             ncn.Pubkey
	Epoch           ncn.Epoch
	Weather         Weather
	VoteWeight      ncn.StakeWeight
	TotalVoteWeight ncn.StakeWeight
	ConsensusSlot   ncn.Slot
	Recorder        ncn.Pubkey
}

// NewConsensusResult builds the result record from a box that reached
// consensus. A tie-break winner without a single cast vote records zero
// vote weight.
func NewConsensusResult(b *Box, totalStake ncn.StakeWeight, recorder ncn.Pubkey) *ConsensusResult {
	var voteWeight ncn.StakeWeight
	if tally := b.WinningTally(); tally != nil {
		voteWeight = tally.StakeWeight
	}

	return &ConsensusResult{
		Ncn:             b.Ncn,
		Epoch:           b.Epoch,
		Weather:         b.WinningBallot.Weather,
		VoteWeight:      voteWeight,
		TotalVoteWeight: totalStake,
		ConsensusSlot:   b.SlotConsensusReached,
		Recorder:        recorder,
	}
}
