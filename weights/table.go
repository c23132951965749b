// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package weights implements the per-epoch weight table: a write-once copy of
// the registry's mint weights, frozen before snapshotting starts so that
// concurrent registry updates cannot reach an epoch already in flight.
package weights

import (
	"github.com/pkg/errors"

	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/registry"
)

var (
	ErrVaultCountMismatch = errors.New("vault count mismatches registry")
	ErrMintNotFound       = errors.New("mint not in weight table")
	ErrWeightNotSet       = errors.New("mint weight not set")
	ErrTableFinalized     = errors.New("weight table finalized")
)

// Entry is the frozen weight of one mint for one epoch.
type Entry struct {
	Mint        ncn.Pubkey
	Weight      uint64
	SlotSet     ncn.Slot
	SlotUpdated ncn.Slot
}

// Table is the per-epoch weight table record.
type Table struct {
	Ncn         ncn.Pubkey
	Epoch       ncn.Epoch
	SlotCreated ncn.Slot
	VaultCount  uint64
	Entries     []Entry
}

// NewTable captures the registry's mint list for the given epoch. Weights
// start unset and are copied in one by one via SetWeight. The caller passes
// the vault count it expects; a mismatch with the registry means membership
// changed under its feet and the whole initialization is rejected.
func NewTable(ncnID ncn.Pubkey, epoch ncn.Epoch, slot ncn.Slot, reg *registry.Registry, expectedVaultCount uint64) (*Table, error) {
	if reg.VaultCount() != expectedVaultCount {
		return nil, ErrVaultCountMismatch
	}

	entries := make([]Entry, 0, len(reg.Mints))
	for _, m := range reg.Mints {
		entries = append(entries, Entry{Mint: m.Mint})
	}

	return &Table{
		Ncn:         ncnID,
		Epoch:       epoch,
		SlotCreated: slot,
		VaultCount:  expectedVaultCount,
		Entries:     entries,
	}, nil
}

// SetWeight copies one mint's current weight into the table. A zero weight
// means the mint is not yet priced and blocks epoch progress. Re-setting a
// mint before finalization only bumps SlotUpdated; once every mint has a
// non-zero weight the table is finalized and rejects further writes.
func (t *Table) SetWeight(mint ncn.Pubkey, weight uint64, slot ncn.Slot) error {
	if t.Finalized() {
		return ErrTableFinalized
	}
	if weight == 0 {
		return ErrWeightNotSet
	}

	entry := t.findEntry(mint)
	if entry == nil {
		return ErrMintNotFound
	}

	if entry.Weight == 0 {
		entry.Weight = weight
		entry.SlotSet = slot
	} else {
		entry.Weight = weight
		entry.SlotUpdated = slot
	}
	return nil
}

// Weight returns the frozen weight for the given mint.
func (t *Table) Weight(mint ncn.Pubkey) (uint64, error) {
	entry := t.findEntry(mint)
	if entry == nil {
		return 0, ErrMintNotFound
	}
	if entry.Weight == 0 {
		return 0, ErrWeightNotSet
	}
	return entry.Weight, nil
}

// Finalized reports whether every known mint carries a non-zero weight.
// A finalized table is immutable; snapshotting requires it.
func (t *Table) Finalized() bool {
	if len(t.Entries) == 0 {
		return false
	}
	for i := range t.Entries {
		if t.Entries[i].Weight == 0 {
			return false
		}
	}
	return true
}

// MintCount returns the number of mints captured at table creation.
func (t *Table) MintCount() uint64 {
	return uint64(len(t.Entries))
}

// SetCount returns how many mints have their weight set.
func (t *Table) SetCount() uint64 {
	var n uint64
	for i := range t.Entries {
		if t.Entries[i].Weight != 0 {
			n++
		}
	}
	return n
}

func (t *Table) findEntry(mint ncn.Pubkey) *Entry {
	for i := range t.Entries {
		if t.Entries[i].Mint == mint {
			return &t.Entries[i]
		}
	}
	return nil
}
