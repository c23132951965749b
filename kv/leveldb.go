// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var writeOpt = &opt.WriteOptions{}
var readOpt = &opt.ReadOptions{}

// implements Batch interface
type levelBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelBatch) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return nil
}

func (b *levelBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelBatch) Len() int {
	return b.batch.Len()
}

func (b *levelBatch) Write() error {
	return b.db.Write(b.batch, writeOpt)
}

// implements Store interface
type levelStore struct {
	db *leveldb.DB
}

func openLevelDB(stg storage.Storage, cacheSize, openFilesCacheCapacity int) (*levelStore, error) {
	if cacheSize < 128 {
		cacheSize = 128
	}
	if openFilesCacheCapacity < 64 {
		openFilesCacheCapacity = 64
	}

	db, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: openFilesCacheCapacity,
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB, // Two of these are used internally
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &levelStore{db: db}, nil
}

// NewMemStore creates an in-memory store, for test & dev.
func NewMemStore() Store {
	store, err := openLevelDB(storage.NewMemStorage(), 128, 0)
	if err != nil {
		panic(errors.Wrap(err, "new mem store"))
	}
	return store
}

// OpenStore opens a persistent store at the given path.
func OpenStore(path string, cacheSize int) (Store, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return openLevelDB(stg, cacheSize, 0)
}

func (s *levelStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key, readOpt)
}

func (s *levelStore) Has(key []byte) (bool, error) {
	return s.db.Has(key, readOpt)
}

func (s *levelStore) IsNotFound(err error) bool {
	return errors.Cause(err) == leveldb.ErrNotFound
}

func (s *levelStore) Put(key, val []byte) error {
	return s.db.Put(key, val, writeOpt)
}

func (s *levelStore) Delete(key []byte) error {
	return s.db.Delete(key, writeOpt)
}

func (s *levelStore) NewBatch() Batch {
	return &levelBatch{s.db, &leveldb.Batch{}}
}

func (s *levelStore) Iterate(prefix []byte) Iterator {
	return s.db.NewIterator(util.BytesPrefix(prefix), readOpt)
}

func (s *levelStore) Close() error {
	return s.db.Close()
}
