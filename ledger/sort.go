// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transaction"
)

// TopologicalSort - order transactions so that each one follows every
// transaction in the set whose outputs it consumes
//
// independent transactions keep their relative order
func TopologicalSort(txs []*transaction.SignedTransaction) ([]*transaction.SignedTransaction, error) {
	index := make(map[merkle.Digest]int, len(txs))
	for i, stx := range txs {
		if _, ok := index[stx.Id()]; ok {
			return nil, fault.ErrDuplicateTransaction
		}
		index[stx.Id()] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	mark := make([]int, len(txs))
	result := make([]*transaction.SignedTransaction, 0, len(txs))

	var visit func(i int) error
	visit = func(i int) error {
		switch mark[i] {
		case done:
			return nil
		case visiting:
			return fault.ErrTransactionCycle
		}
		mark[i] = visiting
		for _, ref := range txs[i].Wire().Inputs() {
			if j, ok := index[ref.TxId]; ok {
				if err := visit(j); nil != err {
					return err
				}
			}
		}
		mark[i] = done
		result = append(result, txs[i])
		return nil
	}

	for i := range txs {
		if err := visit(i); nil != err {
			return nil, err
		}
	}
	return result, nil
}
