// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package store addresses the engine's durable records on a kv substrate.
// Records are keyed by (kind, ncn, epoch[, entity]) and RLP encoded. Every
// engine operation commits through a single batch, which gives the
// all-or-nothing application the consensus pipeline relies on.
package store

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/jito-foundation/ncn-template-sub000/kv"
	"github.com/jito-foundation/ncn-template-sub000/ncn"
)

// Kind tags a record family within the key space.
type Kind byte

const (
	KindVaultRegistry Kind = iota + 1
	KindWeightTable
	KindEpochSnapshot
	KindOperatorSnapshot
	KindBallotBox
	KindEpochState
	KindConsensusResult
	kindClosedMarker
)

// epochKinds are the record kinds reclaimed when an epoch closes.
// ConsensusResult is deliberately absent: it is never reclaimed.
var epochKinds = []Kind{
	KindWeightTable,
	KindEpochSnapshot,
	KindOperatorSnapshot,
	KindBallotBox,
	KindEpochState,
}

// recordsBucket namespaces every engine record within the kv store, leaving
// the rest of the key space free for other components sharing the database.
const recordsBucket = kv.Bucket("r")

// Store is the record store of one engine instance.
type Store struct {
	db     kv.Store
	getter kv.Getter
}

// New wraps a kv store.
func New(db kv.Store) *Store {
	return &Store{
		db:     db,
		getter: recordsBucket.NewGetter(db),
	}
}

// Key builds the key of a singleton record of the given kind.
// Epoch-agnostic kinds (the vault registry) pass epoch 0.
func Key(kind Kind, ncnID ncn.Pubkey, epoch ncn.Epoch) []byte {
	key := make([]byte, 0, 1+32+8)
	key = append(key, byte(kind))
	key = append(key, ncnID[:]...)
	var e [8]byte
	binary.BigEndian.PutUint64(e[:], uint64(epoch))
	return append(key, e[:]...)
}

// EntityKey builds the key of a per-entity record, e.g. one operator's
// snapshot within an epoch.
func EntityKey(kind Kind, ncnID ncn.Pubkey, epoch ncn.Epoch, entity ncn.Pubkey) []byte {
	return append(Key(kind, ncnID, epoch), entity[:]...)
}

// Save RLP-encodes val under key through the given putter, so it can join a
// larger atomic batch.
func (s *Store) Save(putter kv.Putter, key []byte, val interface{}) error {
	data, err := rlp.EncodeToBytes(val)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	return recordsBucket.NewPutter(putter).Put(key, data)
}

// Load decodes the record under key into val.
func (s *Store) Load(key []byte, val interface{}) error {
	data, err := s.getter.Get(key)
	if err != nil {
		return err
	}
	return rlp.DecodeBytes(data, val)
}

// Has reports whether a record exists under key.
func (s *Store) Has(key []byte) (bool, error) {
	return s.getter.Has(key)
}

// IsNotFound checks a Load error for missing records.
func (s *Store) IsNotFound(err error) bool {
	return s.getter.IsNotFound(errors.Cause(err))
}

// NewBatch starts an atomic write batch.
func (s *Store) NewBatch() kv.Batch {
	return s.db.NewBatch()
}

// DeleteEpoch stages removal of every epoch-scoped record of the given epoch
// into the batch and marks the epoch closed, all in the same write. The
// consensus result is untouched.
func (s *Store) DeleteEpoch(batch kv.Batch, ncnID ncn.Pubkey, epoch ncn.Epoch) error {
	for _, kind := range epochKinds {
		// iteration sees raw bucket-prefixed keys, deletes reuse them as-is
		iter := s.db.Iterate(recordsBucket.MakeKey(Key(kind, ncnID, epoch)))
		for iter.Next() {
			if err := batch.Delete(append([]byte(nil), iter.Key()...)); err != nil {
				iter.Release()
				return err
			}
		}
		if err := iter.Error(); err != nil {
			iter.Release()
			return err
		}
		iter.Release()
	}
	return recordsBucket.NewPutter(batch).Put(Key(kindClosedMarker, ncnID, epoch), []byte{1})
}

// IsEpochClosed reports whether the epoch was closed. A closed epoch's
// records must never be re-initialized.
func (s *Store) IsEpochClosed(ncnID ncn.Pubkey, epoch ncn.Epoch) (bool, error) {
	return s.getter.Has(Key(kindClosedMarker, ncnID, epoch))
}
