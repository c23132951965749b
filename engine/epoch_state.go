// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

// Progress tracks one pipeline stage: how many of the expected steps landed.
type Progress struct {
	Tally uint64
	Total uint64
}

// Done reports whether the stage completed.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Tally >= p.Total
}

// OperatorProgress is the snapshotting progress of a single operator.
type OperatorProgress struct {
	Operator ncn.Pubkey
	Progress Progress
}

// EpochState is the single source of truth for what stage an epoch is in.
// Every stage-advancing operation checks its prerequisite stage here and
// records its own progress on success, which is what makes premature or
// replayed calls cheap, deterministic rejections instead of corruption.
type EpochState struct {
	Ncn           ncn.Pubkey
	Epoch         ncn.Epoch
	SlotCreated   ncn.Slot
	OperatorCount uint64
	VaultCount    uint64

	SetWeightProgress        Progress
	EpochSnapshotProgress    Progress
	OperatorSnapshotProgress []OperatorProgress
	VotingProgress           Progress

	WasTieBreakerSet     bool
	SlotConsensusReached ncn.Slot
	IsClosing            bool
}

// NewEpochState opens the bookkeeping record for an epoch. The operator
// count comes from the membership system, the vault count from the registry;
// both are captured here and every later stage validates against them.
func NewEpochState(ncnID ncn.Pubkey, epoch ncn.Epoch, slot ncn.Slot, operatorCount, vaultCount uint64) *EpochState {
	return &EpochState{
		Ncn:           ncnID,
		Epoch:         epoch,
		SlotCreated:   slot,
		OperatorCount: operatorCount,
		VaultCount:    vaultCount,
	}
}

// operatorProgress returns the progress entry of the given operator, or nil.
func (es *EpochState) operatorProgress(operator ncn.Pubkey) *OperatorProgress {
	for i := range es.OperatorSnapshotProgress {
		if es.OperatorSnapshotProgress[i].Operator == operator {
			return &es.OperatorSnapshotProgress[i]
		}
	}
	return nil
}
