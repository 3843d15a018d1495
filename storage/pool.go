// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// prefixes of the pools
const (
	transactionPrefix = 'T'
	attachmentPrefix  = 'A'
	consumedPrefix    = 'S'
)

// PoolHandle - one prefixed table of the database
type PoolHandle struct {
	prefix   byte
	database *leveldb.DB
	cache    Cache
}

func newPool(prefix byte, database *leveldb.DB, cache Cache) *PoolHandle {
	return &PoolHandle{
		prefix:   prefix,
		database: database,
		cache:    cache,
	}
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// add a key/value pair to a batch, the cache is filled once the
// batch is written
func (p *PoolHandle) put(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(p.prefixKey(key), value)
}

// fill the cache after a successful write
func (p *PoolHandle) cached(key []byte, value []byte) {
	p.cache.Set(string(p.prefixKey(key)), value)
}

// Get - read a value for a given key, nil if not found
//
// the result is shared with the cache and must not be modified
func (p *PoolHandle) Get(key []byte) ([]byte, error) {
	prefixedKey := p.prefixKey(key)
	if value, ok := p.cache.Get(string(prefixedKey)); ok {
		return value, nil
	}

	value, err := p.database.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	p.cache.Set(string(prefixedKey), value)
	return value, nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) (bool, error) {
	prefixedKey := p.prefixKey(key)
	if _, ok := p.cache.Get(string(prefixedKey)); ok {
		return true, nil
	}
	return p.database.Has(prefixedKey, nil)
}

// Count - number of elements in the pool
func (p *PoolHandle) Count() (int, error) {
	iter := p.database.NewIterator(ldb_util.BytesPrefix([]byte{p.prefix}), nil)
	n := 0
	for iter.Next() {
		n += 1
	}
	iter.Release()
	return n, iter.Error()
}
