// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ncn

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Pubkey identifies an on-network entity (ncn, operator, vault or mint).
type Pubkey [32]byte

var (
	_ json.Marshaler   = (*Pubkey)(nil)
	_ json.Unmarshaler = (*Pubkey)(nil)
)

// String implements stringer
func (p Pubkey) String() string {
	return "0x" + hex.EncodeToString(p[:])
}

// AbbrevString returns abbrev string presentation.
func (p Pubkey) AbbrevString() string {
	return fmt.Sprintf("0x%x…%x", p[:4], p[28:])
}

// Bytes returns byte slice form of Pubkey.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

// IsZero returns if Pubkey has all zero bytes.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// MarshalJSON implements json.Marshaler.
func (p *Pubkey) MarshalJSON() ([]byte, error) {
	if p == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Pubkey) UnmarshalJSON(data []byte) error {
	var hex string
	if err := json.Unmarshal(data, &hex); err != nil {
		return err
	}
	parsed, err := ParsePubkey(hex)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey converts string presentation into Pubkey type.
func ParsePubkey(s string) (Pubkey, error) {
	if len(s) == 32*2 {
	} else if len(s) == 32*2+2 {
		if strings.ToLower(s[:2]) != "0x" {
			return Pubkey{}, errors.New("invalid prefix")
		}
		s = s[2:]
	} else {
		return Pubkey{}, errors.New("invalid length")
	}

	var p Pubkey
	if _, err := hex.Decode(p[:], []byte(s)); err != nil {
		return Pubkey{}, err
	}
	return p, nil
}

// BytesToPubkey converts bytes slice into Pubkey.
// If b is larger than pubkey length, b will be cropped (from the left).
// If b is smaller than pubkey length, b will be extended (from the left).
func BytesToPubkey(b []byte) Pubkey {
	var p Pubkey
	if len(b) > len(p) {
		b = b[len(b)-len(p):]
	}
	copy(p[len(p)-len(b):], b)
	return p
}
