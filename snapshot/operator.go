// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package snapshot implements the per-epoch stake snapshots: one operator
// snapshot per voting participant, folded into a single epoch aggregate once
// all of the operator's vault delegations are registered.
package snapshot

import (
	"github.com/pkg/errors"

	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/weights"
)

var (
	ErrWeightTableNotFinalized = errors.New("weight table not finalized")
	ErrNoOperators             = errors.New("no operators to snapshot")
	ErrOperatorCapacity        = errors.New("operator capacity exceeded")
	ErrOperatorFinalized       = errors.New("operator snapshot finalized")
	ErrOperatorNotFinalized    = errors.New("operator snapshot not finalized")
	ErrDelegationAlreadyNoted  = errors.New("vault delegation already noted")
	ErrOperatorAlreadyCounted  = errors.New("operator already counted in epoch snapshot")
)

// VaultDelegation is one registered vault-operator delegation, weighted by
// the epoch's frozen mint weight.
type VaultDelegation struct {
	Vault       ncn.Pubkey
	Mint        ncn.Pubkey
	Amount      uint64
	Weight      uint64
	StakeWeight ncn.StakeWeight
	SlotNoted   ncn.Slot
}

// OperatorSnapshot is the per-operator, per-epoch stake record. It becomes
// immutable once all of its expected delegations are registered.
type OperatorSnapshot struct {
	Ncn                   ncn.Pubkey
	Operator              ncn.Pubkey
	Epoch                 ncn.Epoch
	SlotCreated           ncn.Slot
	SlotFinalized         ncn.Slot
	IsActive              bool
	OperatorIndex         uint64
	DelegationCount       uint64
	DelegationsRegistered uint64
	ValidDelegations      uint64
	StakeWeight           ncn.StakeWeight
	Counted               bool
	Delegations           []VaultDelegation
}

// NewOperatorSnapshot opens a snapshot for one operator. Inactive operators
// are snapshotted too, usually with a zero delegation count, so that vote
// eligibility checks stay well-defined. An operator with no expected
// delegations is finalized from the start, with zero stake.
func NewOperatorSnapshot(ncnID, operator ncn.Pubkey, epoch ncn.Epoch, slot ncn.Slot, isActive bool, operatorIndex, delegationCount uint64) *OperatorSnapshot {
	os := &OperatorSnapshot{
		Ncn:             ncnID,
		Operator:        operator,
		Epoch:           epoch,
		SlotCreated:     slot,
		IsActive:        isActive,
		OperatorIndex:   operatorIndex,
		DelegationCount: delegationCount,
		Delegations:     make([]VaultDelegation, 0, delegationCount),
	}
	if delegationCount == 0 {
		os.SlotFinalized = slot
	}
	return os
}

// NoteVaultDelegation registers one vault's delegation to this operator,
// weighted by the frozen table. Idempotent per vault: replaying an already
// registered vault fails with ErrDelegationAlreadyNoted and changes nothing.
// Returns whether the snapshot is now finalized.
func (os *OperatorSnapshot) NoteVaultDelegation(vault, mint ncn.Pubkey, amount uint64, table *weights.Table, slot ncn.Slot) (bool, error) {
	if os.Finalized() {
		return true, ErrOperatorFinalized
	}
	for i := range os.Delegations {
		if os.Delegations[i].Vault == vault {
			return false, ErrDelegationAlreadyNoted
		}
	}

	weight, err := table.Weight(mint)
	if err != nil {
		return false, err
	}

	sw := ncn.StakeWeightFromProduct(amount, weight)
	if err := os.StakeWeight.Add(sw); err != nil {
		return false, err
	}

	os.Delegations = append(os.Delegations, VaultDelegation{
		Vault:       vault,
		Mint:        mint,
		Amount:      amount,
		Weight:      weight,
		StakeWeight: sw,
		SlotNoted:   slot,
	})
	os.DelegationsRegistered++
	if !sw.IsZero() {
		os.ValidDelegations++
	}
	if os.Finalized() {
		os.SlotFinalized = slot
	}
	return os.Finalized(), nil
}

// Finalized reports whether all expected delegations are registered.
func (os *OperatorSnapshot) Finalized() bool {
	return os.DelegationsRegistered >= os.DelegationCount
}
