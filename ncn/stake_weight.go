// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ncn

import (
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Errors of stake weight arithmetic. Both signal a data-integrity problem
// upstream and must never be clamped away.
var (
	ErrStakeWeightOverflow  = errors.New("stake weight overflow")
	ErrStakeWeightUnderflow = errors.New("stake weight underflow")
)

// maxStakeWeight caps the value range at 2^128 - 1. Delegation amounts and
// token weights are 64-bit, so a single product always fits; only
// accumulation can hit the cap.
var maxStakeWeight = func() *uint256.Int {
	max := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	return max.Sub(max, uint256.NewInt(1))
}()

// StakeWeight is a non-negative scalar, the unit of voting power.
// Arithmetic is checked: overflow/underflow fail loudly instead of wrapping.
// The zero value is a zero weight, ready to use.
type StakeWeight struct {
	n uint256.Int
}

var (
	_ rlp.Encoder      = (*StakeWeight)(nil)
	_ rlp.Decoder      = (*StakeWeight)(nil)
	_ json.Marshaler   = (*StakeWeight)(nil)
	_ json.Unmarshaler = (*StakeWeight)(nil)
)

// NewStakeWeight creates a stake weight from a uint64 value.
func NewStakeWeight(v uint64) StakeWeight {
	var w StakeWeight
	w.n.SetUint64(v)
	return w
}

// StakeWeightFromProduct computes amount × weight. The product of two 64-bit
// operands always fits the 128-bit range.
func StakeWeightFromProduct(amount, weight uint64) StakeWeight {
	var w StakeWeight
	w.n.Mul(uint256.NewInt(amount), uint256.NewInt(weight))
	return w
}

// Add accumulates other into w. Exceeding the 128-bit cap fails with
// ErrStakeWeightOverflow and leaves w unchanged.
func (w *StakeWeight) Add(other StakeWeight) error {
	var sum uint256.Int
	sum.Add(&w.n, &other.n)
	if sum.Cmp(maxStakeWeight) > 0 {
		return ErrStakeWeightOverflow
	}
	w.n = sum
	return nil
}

// AccumulateProduct adds amount × weight to w.
func (w *StakeWeight) AccumulateProduct(amount, weight uint64) error {
	return w.Add(StakeWeightFromProduct(amount, weight))
}

// Sub removes other from w. Going negative fails with
// ErrStakeWeightUnderflow and leaves w unchanged.
func (w *StakeWeight) Sub(other StakeWeight) error {
	if w.n.Cmp(&other.n) < 0 {
		return ErrStakeWeightUnderflow
	}
	w.n.Sub(&w.n, &other.n)
	return nil
}

// Cmp compares w and other, returning -1, 0 or +1.
func (w StakeWeight) Cmp(other StakeWeight) int {
	return w.n.Cmp(&other.n)
}

// IsZero returns whether the weight is zero.
func (w StakeWeight) IsZero() bool {
	return w.n.IsZero()
}

// MeetsThreshold reports whether w holds at least 2/3 of total, evaluated as
// 3×w ≥ 2×total in integers. Intermediates fit 256 bits since operands are
// capped at 128 bits.
func (w StakeWeight) MeetsThreshold(total StakeWeight) bool {
	var lhs, rhs uint256.Int
	lhs.Mul(&w.n, uint256.NewInt(3))
	rhs.Mul(&total.n, uint256.NewInt(2))
	return lhs.Cmp(&rhs) >= 0
}

// String implements stringer, in decimal.
func (w StakeWeight) String() string {
	return w.n.Dec()
}

// EncodeRLP implements rlp.Encoder. The value is encoded as its minimal
// big-endian byte form.
func (w *StakeWeight) EncodeRLP(wr io.Writer) error {
	return rlp.Encode(wr, w.n.Bytes())
}

// DecodeRLP implements rlp.Decoder.
func (w *StakeWeight) DecodeRLP(s *rlp.Stream) error {
	b, err := s.Bytes()
	if err != nil {
		return err
	}
	if len(b) > 32 {
		return errors.New("rlp: stake weight too long")
	}
	w.n.SetBytes(b)
	if w.n.Cmp(maxStakeWeight) > 0 {
		return ErrStakeWeightOverflow
	}
	return nil
}

// MarshalJSON implements json.Marshaler, as a decimal string.
func (w *StakeWeight) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.n.Dec())
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *StakeWeight) UnmarshalJSON(data []byte) error {
	var dec string
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}
	n, err := uint256.FromDecimal(dec)
	if err != nil {
		return err
	}
	if n.Cmp(maxStakeWeight) > 0 {
		return ErrStakeWeightOverflow
	}
	w.n = *n
	return nil
}
