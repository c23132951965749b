// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry keeps the long-lived catalog of supported token mints and
// registered vaults. It is the only record mutated outside the epoch-scoped
// pipeline; per-epoch weight tables copy from it and never reference it live.
package registry

import (
	"github.com/pkg/errors"

	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

var (
	ErrMintCapacity   = errors.New("supported mint capacity exceeded")
	ErrVaultCapacity  = errors.New("vault capacity exceeded")
	ErrDuplicateMint  = errors.New("mint already registered")
	ErrDuplicateVault = errors.New("vault already registered")
	ErrMintNotFound   = errors.New("mint not registered")
)

// MintEntry is a supported token type with its admin-assigned weight.
// A zero weight means "not yet priced".
type MintEntry struct {
	Mint        ncn.Pubkey
	Weight      uint64
	SlotSet     ncn.Slot
	SlotUpdated ncn.Slot
}

// VaultEntry is a registered stake-holding vault, denominated in one mint.
type VaultEntry struct {
	Vault          ncn.Pubkey
	Mint           ncn.Pubkey
	Index          uint64
	SlotRegistered ncn.Slot
}

// Registry is the vault registry record.
// Both lists are append-only; entries are never removed or reordered.
type Registry struct {
	Ncn    ncn.Pubkey
	Mints  []MintEntry
	Vaults []VaultEntry
}

// New creates an empty registry for the given ncn.
func New(ncnID ncn.Pubkey) *Registry {
	return &Registry{Ncn: ncnID}
}

// RegisterMint appends a supported mint with zero (unpriced) weight.
func (r *Registry) RegisterMint(mint ncn.Pubkey, slot ncn.Slot) error {
	if len(r.Mints) >= ncn.MaxVaultEntries {
		return ErrMintCapacity
	}
	if r.findMint(mint) != nil {
		return ErrDuplicateMint
	}

	r.Mints = append(r.Mints, MintEntry{
		Mint:    mint,
		SlotSet: slot,
	})
	return nil
}

// SetMintWeight updates a mint's weight. Allowed at any time; epochs already
// past their weight-setting stage are unaffected since they hold copies.
func (r *Registry) SetMintWeight(mint ncn.Pubkey, weight uint64, slot ncn.Slot) error {
	entry := r.findMint(mint)
	if entry == nil {
		return ErrMintNotFound
	}

	entry.Weight = weight
	entry.SlotUpdated = slot
	return nil
}

// RegisterVault appends a vault delegating stake denominated in mint.
func (r *Registry) RegisterVault(vault, mint ncn.Pubkey, slot ncn.Slot) error {
	if len(r.Vaults) >= ncn.MaxVaultEntries {
		return ErrVaultCapacity
	}
	if r.findMint(mint) == nil {
		return ErrMintNotFound
	}
	for i := range r.Vaults {
		if r.Vaults[i].Vault == vault {
			return ErrDuplicateVault
		}
	}

	r.Vaults = append(r.Vaults, VaultEntry{
		Vault:          vault,
		Mint:           mint,
		Index:          uint64(len(r.Vaults)),
		SlotRegistered: slot,
	})
	return nil
}

// MintEntry returns the entry for the given mint, or nil.
func (r *Registry) MintEntry(mint ncn.Pubkey) *MintEntry {
	return r.findMint(mint)
}

// VaultEntry returns the entry for the given vault, or nil.
func (r *Registry) VaultEntry(vault ncn.Pubkey) *VaultEntry {
	for i := range r.Vaults {
		if r.Vaults[i].Vault == vault {
			return &r.Vaults[i]
		}
	}
	return nil
}

// MintCount returns the number of supported mints.
func (r *Registry) MintCount() uint64 {
	return uint64(len(r.Mints))
}

// VaultCount returns the number of registered vaults.
func (r *Registry) VaultCount() uint64 {
	return uint64(len(r.Vaults))
}

func (r *Registry) findMint(mint ncn.Pubkey) *MintEntry {
	for i := range r.Mints {
		if r.Mints[i].Mint == mint {
			return &r.Mints[i]
		}
	}
	return nil
}
