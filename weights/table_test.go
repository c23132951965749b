// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jito-foundation/ncn-template-sub000/ncn"
	"github.com/jito-foundation/ncn-template-sub000/registry"
)

func newTestRegistry(t *testing.T, mints, vaults int) *registry.Registry {
	reg := registry.New(ncn.Pubkey{0xff})
	for i := 0; i < mints; i++ {
		assert.Nil(t, reg.RegisterMint(ncn.Pubkey{1, byte(i)}, 1))
	}
	for i := 0; i < vaults; i++ {
		assert.Nil(t, reg.RegisterVault(ncn.Pubkey{2, byte(i)}, ncn.Pubkey{1, byte(i % mints)}, 1))
	}
	return reg
}

func TestNewTable(t *testing.T) {
	reg := newTestRegistry(t, 2, 3)

	_, err := NewTable(ncn.Pubkey{0xff}, 7, 100, reg, 4)
	assert.Equal(t, ErrVaultCountMismatch, err)

	table, err := NewTable(ncn.Pubkey{0xff}, 7, 100, reg, 3)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), table.MintCount())
	assert.False(t, table.Finalized())
}

func TestSetWeight(t *testing.T) {
	reg := newTestRegistry(t, 2, 2)
	table, err := NewTable(ncn.Pubkey{0xff}, 7, 100, reg, 2)
	assert.Nil(t, err)

	mint0 := ncn.Pubkey{1, 0}
	mint1 := ncn.Pubkey{1, 1}

	assert.Equal(t, ErrWeightNotSet, table.SetWeight(mint0, 0, 101))
	assert.Equal(t, ErrMintNotFound, table.SetWeight(ncn.Pubkey{9}, 5, 101))

	assert.Nil(t, table.SetWeight(mint0, 5, 101))
	assert.False(t, table.Finalized())

	// re-setting before finalization updates the weight
	assert.Nil(t, table.SetWeight(mint0, 6, 102))
	w, err := table.Weight(mint0)
	assert.Nil(t, err)
	assert.Equal(t, uint64(6), w)
	assert.Equal(t, uint64(1), table.SetCount())

	// weight of an unset mint is unreadable
	_, err = table.Weight(mint1)
	assert.Equal(t, ErrWeightNotSet, err)

	assert.Nil(t, table.SetWeight(mint1, 10, 103))
	assert.True(t, table.Finalized())

	// finalized table is immutable
	assert.Equal(t, ErrTableFinalized, table.SetWeight(mint0, 7, 104))
}

func TestEmptyTableNeverFinalized(t *testing.T) {
	reg := registry.New(ncn.Pubkey{0xff})
	table, err := NewTable(ncn.Pubkey{0xff}, 7, 100, reg, 0)
	assert.Nil(t, err)
	assert.False(t, table.Finalized())
}
