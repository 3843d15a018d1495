// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transaction"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// PutTransaction - record a fully signed transaction and mark its
// inputs consumed
//
// recording the same transaction again is a no-op; an input already
// consumed by another transaction is rejected and nothing is written
func (s *Store) PutTransaction(stx *transaction.SignedTransaction) error {
	if err := stx.VerifySignatures(); nil != err {
		s.log.Warnf("put: tx: %s  error: %s", stx.Id(), err)
		return fmt.Errorf("%w: %s", fault.ErrNotFullySigned, err)
	}

	id := stx.Id()

	s.lock.Lock()
	defer s.lock.Unlock()

	if nil == s.database {
		return fault.ErrNotInitialised
	}

	batch := new(leveldb.Batch)
	refs := stx.Wire().Inputs()
	for _, ref := range refs {
		consumer, err := s.consumed.Get(ref.Pack())
		if nil != err {
			return err
		}
		if nil == consumer {
			s.consumed.put(batch, ref.Pack(), id[:])
			continue
		}
		var consumerId merkle.Digest
		if err := merkle.DigestFromBytes(&consumerId, consumer); nil != err {
			s.log.Criticalf("put: tx: %s  input: %s  corrupt consumer record: %x", id, ref, consumer)
			return err
		}
		if consumerId != id {
			s.log.Warnf("put: tx: %s  input: %s  consumed by: %x", id, ref, consumer)
			return fmt.Errorf("%w: %s", fault.ErrStateConsumed, ref)
		}
	}

	packed := stx.Pack()
	s.transactions.put(batch, id[:], packed)

	if err := s.database.Write(batch, nil); nil != err {
		s.log.Criticalf("put: tx: %s  write error: %s", id, err)
		return err
	}

	s.transactions.cached(id[:], packed)
	for _, ref := range refs {
		s.consumed.cached(ref.Pack(), id[:])
	}

	s.log.Debugf("put: tx: %s  inputs: %d  bytes: %d", id, len(refs), len(packed))
	return nil
}

// GetTransaction - read a recorded transaction
func (s *Store) GetTransaction(id merkle.Digest) (*transaction.SignedTransaction, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if nil == s.database {
		return nil, fault.ErrNotInitialised
	}

	packed, err := s.transactions.Get(id[:])
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, &fault.UnresolvedError{
			Base: fault.ErrTransactionNotFound,
			Id:   id.String(),
		}
	}

	stx, err := transaction.UnpackSignedTransaction(packed)
	if nil != err {
		s.log.Criticalf("get: tx: %s  corrupt record: %s", id, err)
		return nil, err
	}
	return stx, nil
}

// HasTransaction - true if the transaction is recorded
func (s *Store) HasTransaction(id merkle.Digest) (bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if nil == s.database {
		return false, fault.ErrNotInitialised
	}
	return s.transactions.Has(id[:])
}

// ResolveState - an output of a recorded transaction
func (s *Store) ResolveState(ref transactionrecord.StateRef) (*transactionrecord.TransactionState, error) {
	stx, err := s.GetTransaction(ref.TxId)
	if nil != err {
		return nil, err
	}

	output, err := stx.Wire().OutRef(int(ref.Index))
	if nil != err {
		return nil, &fault.UnresolvedError{
			Base: fault.ErrTransactionNotFound,
			Id:   ref.String(),
		}
	}
	return &output.State, nil
}

// ConsumedBy - the transaction that consumed a state, false if the
// state is unconsumed
func (s *Store) ConsumedBy(ref transactionrecord.StateRef) (merkle.Digest, bool, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if nil == s.database {
		return merkle.Digest{}, false, fault.ErrNotInitialised
	}

	consumer, err := s.consumed.Get(ref.Pack())
	if nil != err || nil == consumer {
		return merkle.Digest{}, false, err
	}
	var id merkle.Digest
	if err := merkle.DigestFromBytes(&id, consumer); nil != err {
		return merkle.Digest{}, false, err
	}
	return id, true, nil
}
