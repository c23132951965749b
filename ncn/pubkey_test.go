// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ncn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePubkey(t *testing.T) {
	p := Pubkey{1, 2, 3}

	parsed, err := ParsePubkey(p.String())
	assert.Nil(t, err)
	assert.Equal(t, p, parsed)

	_, err = ParsePubkey("0x123")
	assert.NotNil(t, err)

	_, err = ParsePubkey("zz" + p.String()[2:])
	assert.NotNil(t, err)
}

func TestBytesToPubkey(t *testing.T) {
	assert.Equal(t, Pubkey{31: 1}, BytesToPubkey([]byte{1}))
	assert.True(t, BytesToPubkey(nil).IsZero())
	assert.False(t, Pubkey{1}.IsZero())
}

func TestPubkeyJSON(t *testing.T) {
	p := Pubkey{0xde, 0xad}
	data, err := p.MarshalJSON()
	assert.Nil(t, err)

	var decoded Pubkey
	assert.Nil(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, p, decoded)
}
