// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter defines methods to read kvs.
type Getter interface {
	// Get value for given key.
	// An error returned if key not found. It can be checked via IsNotFound.
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter defines methods to write kvs.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Batch defines a batch of writes applied atomically.
type Batch interface {
	Putter

	Len() int
	Write() error
}

// Iterator iterates over kv pairs.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Store defines the full functional kv store.
type Store interface {
	Getter
	Putter

	NewBatch() Batch
	Iterate(prefix []byte) Iterator
	Close() error
}
