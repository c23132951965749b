// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package snapshot

import (
	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/weights"
)

// EpochSnapshot is the per-epoch stake aggregate. It grows additively as
// operator snapshots finalize and never decreases.
type EpochSnapshot struct {
	Ncn                 ncn.Pubkey
	Epoch               ncn.Epoch
	SlotCreated         ncn.Slot
	SlotFinalized       ncn.Slot
	OperatorCount       uint64
	VaultCount          uint64
	OperatorsRegistered uint64
	ValidDelegations    uint64
	StakeWeight         ncn.StakeWeight
}

// NewEpochSnapshot opens the epoch aggregate. It requires the epoch's weight
// table to be finalized first; a snapshot taken against mutable weights would
// reintroduce the time-of-check/time-of-use race the freeze exists to kill.
func NewEpochSnapshot(ncnID ncn.Pubkey, epoch ncn.Epoch, slot ncn.Slot, operatorCount, vaultCount uint64, table *weights.Table) (*EpochSnapshot, error) {
	if !table.Finalized() {
		return nil, ErrWeightTableNotFinalized
	}
	if operatorCount == 0 {
		return nil, ErrNoOperators
	}
	if operatorCount > ncn.MaxOperators {
		return nil, ErrOperatorCapacity
	}

	return &EpochSnapshot{
		Ncn:           ncnID,
		Epoch:         epoch,
		SlotCreated:   slot,
		OperatorCount: operatorCount,
		VaultCount:    vaultCount,
	}, nil
}

// FoldOperator adds a finalized operator snapshot to the aggregate, exactly
// once. The operator's counted flag guards retried transactions against
// double counting.
func (es *EpochSnapshot) FoldOperator(os *OperatorSnapshot, slot ncn.Slot) error {
	if !os.Finalized() {
		return ErrOperatorNotFinalized
	}
	if os.Counted {
		return ErrOperatorAlreadyCounted
	}

	if err := es.StakeWeight.Add(os.StakeWeight); err != nil {
		return err
	}
	os.Counted = true
	es.OperatorsRegistered++
	es.ValidDelegations += os.ValidDelegations
	if es.Finalized() {
		es.SlotFinalized = slot
	}
	return nil
}

// Finalized reports whether every expected operator has contributed.
func (es *EpochSnapshot) Finalized() bool {
	return es.OperatorsRegistered >= es.OperatorCount
}
