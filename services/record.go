// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package services

import (
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/ledger"
	"github.com/bitmark-inc/ledgertx/transaction"
)

// Record - verify a fully signed transaction against the store and
// record it
//
// a transaction that is already recorded is accepted unchanged
func Record(stx *transaction.SignedTransaction) error {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.log {
		return fault.ErrNotInitialised
	}
	return record(stx)
}

// Import - record a set of transactions dependencies first
//
// returns the number recorded before any failure; those remain
// recorded
func Import(txs []*transaction.SignedTransaction) (int, error) {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.log {
		return 0, fault.ErrNotInitialised
	}

	sorted, err := ledger.TopologicalSort(txs)
	if nil != err {
		globalData.log.Errorf("import: %d transactions  error: %s", len(txs), err)
		return 0, err
	}

	for i, stx := range sorted {
		if err := record(stx); nil != err {
			return i, err
		}
	}
	globalData.log.Infof("import: %d transactions", len(sorted))
	return len(sorted), nil
}

// must hold the read lock
func record(stx *transaction.SignedTransaction) error {
	log := globalData.log
	store := globalData.store

	found, err := store.HasTransaction(stx.Id())
	if nil != err {
		return err
	}
	if found {
		log.Debugf("record: tx: %s  already recorded", stx.Id())
		return nil
	}

	if err := stx.VerifyTransaction(globalData.verifier); nil != err {
		log.Warnf("record: tx: %s  rejected: %s", stx.Id(), err)
		return err
	}
	if err := store.PutTransaction(stx); nil != err {
		return err
	}
	log.Infof("record: tx: %s", stx.Id())
	return nil
}
