// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ledgertx/fault"
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// database access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - transactions, attachments and the consumed state index
type Store struct {
	lock         sync.RWMutex // serialises writers
	log          *logger.L
	database     *leveldb.DB
	cache        Cache
	transactions *PoolHandle
	attachments  *PoolHandle
	consumed     *PoolHandle
}

// Open - open or create the database file
func Open(file string, readOnly bool, cacheExpiry time.Duration, log *logger.L) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(file, opt)
	if nil != err {
		log.Errorf("open: %q  error: %s", file, err)
		return nil, err
	}
	log.Infof("open: %q", file)
	return newStore(db, readOnly, cacheExpiry, log)
}

// OpenMemory - database held in memory, lost on close
func OpenMemory(cacheExpiry time.Duration, log *logger.L) (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return newStore(db, false, cacheExpiry, log)
}

func newStore(db *leveldb.DB, readOnly bool, cacheExpiry time.Duration, log *logger.L) (*Store, error) {
	version, err := getVersion(db)
	if nil != err {
		db.Close()
		return nil, err
	}

	switch {
	case 0 == version && !readOnly:
		// database was empty so tag as current version
		err = putVersion(db, currentDBVersion)
		if nil != err {
			db.Close()
			return nil, err
		}
	case currentDBVersion != version:
		log.Criticalf("database version: %d  current version: %d", version, currentDBVersion)
		db.Close()
		return nil, fault.ErrDatabaseVersion
	}

	c := newCache(cacheExpiry)
	s := &Store{
		log:          log,
		database:     db,
		cache:        c,
		transactions: newPool(transactionPrefix, db, c),
		attachments:  newPool(attachmentPrefix, db, c),
		consumed:     newPool(consumedPrefix, db, c),
	}

	transactions, err := s.transactions.Count()
	if nil != err {
		db.Close()
		return nil, err
	}
	attachments, err := s.attachments.Count()
	if nil != err {
		db.Close()
		return nil, err
	}
	log.Infof("transactions: %d  attachments: %d", transactions, attachments)

	return s, nil
}

// Counts - number of recorded transactions and attachments
func (s *Store) Counts() (int, int, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if nil == s.database {
		return 0, 0, fault.ErrNotInitialised
	}
	transactions, err := s.transactions.Count()
	if nil != err {
		return 0, 0, err
	}
	attachments, err := s.attachments.Count()
	if nil != err {
		return 0, 0, err
	}
	return transactions, attachments, nil
}

// Close - flush the cache and close the database
func (s *Store) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if nil == s.database {
		return fault.ErrNotInitialised
	}
	s.cache.Clear()
	err := s.database.Close()
	s.database = nil
	s.log.Info("closed")
	return err
}

// return:
//   version number, zero for an empty database
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}
	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
