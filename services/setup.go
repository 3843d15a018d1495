// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package services

import (
	"fmt"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/background"
	"github.com/bitmark-inc/ledgertx/configuration"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/ledger"
	"github.com/bitmark-inc/ledgertx/signing"
	"github.com/bitmark-inc/ledgertx/storage"
	"github.com/bitmark-inc/ledgertx/transaction"
)

// logging channels
const (
	logCategory        = "services"
	signingLogCategory = "signing"
	storageLogCategory = "storage"
	ledgerLogCategory  = "ledger"
	reloadLogCategory  = "reloader"
	statsLogCategory   = "stats"
)

var globalData struct {
	sync.RWMutex
	log       *logger.L
	config    *configuration.Configuration
	keystore  *signing.Keystore
	store     *storage.Store
	verifier  *ledger.Verifier
	processes *background.T

	transactionLog bool // transaction package logging started here
}

// Initialise - open the store and create the keystore and verifier
func Initialise(config *configuration.Configuration, readOnly bool) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.log {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New(logCategory)
	if nil == log {
		return fault.ErrInvalidLoggerChannel
	}
	log.Info("starting…")

	keys, err := decodeKeys(config.Keys, config.Testing, log)
	if nil != err {
		return err
	}
	keystore := signing.New(logger.New(signingLogCategory), config.PlatformVersion)
	for _, privateKey := range keys {
		keystore.Add(privateKey)
	}

	store, err := storage.Open(config.Database, readOnly, config.CacheDuration(), logger.New(storageLogCategory))
	if nil != err {
		log.Errorf("storage: %q  error: %s", config.Database, err)
		return err
	}

	// package logging is optional so an earlier initialisation is kept
	err = transaction.Initialise()
	switch err {
	case nil:
		globalData.transactionLog = true
	case fault.ErrAlreadyInitialised:
	default:
		store.Close()
		return err
	}

	globalData.log = log
	globalData.config = config
	globalData.keystore = keystore
	globalData.store = store
	globalData.verifier = ledger.NewWithSampleContracts(logger.New(ledgerLogCategory), store)

	return nil
}

// Finalise - stop background processes, close the store and release
// everything
func Finalise() error {
	// processes take the read lock so must stop before the lock is held
	globalData.Lock()
	processes := globalData.processes
	globalData.processes = nil
	globalData.Unlock()

	if nil != processes {
		processes.Stop()
	}

	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}

	err := globalData.store.Close()
	if globalData.transactionLog {
		transaction.Finalise()
		globalData.transactionLog = false
	}

	globalData.log.Info("finished")
	globalData.log.Flush()

	globalData.log = nil
	globalData.config = nil
	globalData.keystore = nil
	globalData.store = nil
	globalData.verifier = nil

	return err
}

// AddKeys - decode base58 private keys into the keystore
//
// keys already held are replaced by the same key
func AddKeys(encoded []string, testing bool) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}

	keys, err := decodeKeys(encoded, testing, globalData.log)
	if nil != err {
		return err
	}
	for _, privateKey := range keys {
		globalData.keystore.Add(privateKey)
	}
	return nil
}

func decodeKeys(encoded []string, testing bool, log *logger.L) ([]*account.PrivateKey, error) {
	keys := make([]*account.PrivateKey, 0, len(encoded))
	for i, s := range encoded {
		privateKey, err := account.PrivateKeyFromBase58(s)
		if nil != err {
			log.Errorf("key[%d]: error: %s", i, err)
			return nil, fmt.Errorf("%w: key[%d]: %s", fault.ErrInvalidConfiguration, i, err)
		}
		if privateKey.Test != testing {
			log.Errorf("key[%d]: testing: %t  configured: %t", i, privateKey.Test, testing)
			return nil, fmt.Errorf("%w: key[%d]", fault.ErrWrongNetworkForPublicKey, i)
		}
		keys = append(keys, privateKey)
	}
	return keys, nil
}

// Keystore - the signing keys
func Keystore() *signing.Keystore {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.keystore
}

// Store - the transaction and attachment database
func Store() *storage.Store {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.store
}

// Verifier - the ledger verifier backed by the store
func Verifier() *ledger.Verifier {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.verifier
}
