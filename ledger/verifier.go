// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"sort"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/transaction"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Contract - rules for the states of one kind
//
// Verify returns the reason for rejecting the transaction
type Contract interface {
	Verify(tx *LedgerTransaction) error
}

// name used for the structural rules
const structureContract = "structure"

// Verifier - resolves transactions and runs their contracts
type Verifier struct {
	lock      sync.RWMutex
	log       *logger.L
	resolver  Resolver
	contracts map[transactionrecord.StateKind]Contract
}

// New - verifier with no contracts registered
func New(log *logger.L, resolver Resolver) *Verifier {
	return &Verifier{
		log:       log,
		resolver:  resolver,
		contracts: make(map[transactionrecord.StateKind]Contract),
	}
}

// NewWithSampleContracts - verifier with the cash, commercial paper
// and linear contracts
func NewWithSampleContracts(log *logger.L, resolver Resolver) *Verifier {
	v := New(log, resolver)
	v.Register(transactionrecord.CashStateKind, &Cash{})
	v.Register(transactionrecord.CommercialPaperStateKind, &CommercialPaper{})
	v.Register(transactionrecord.LinearStateKind, &Linear{})
	return v
}

// Register - set the contract for a state kind
func (v *Verifier) Register(kind transactionrecord.StateKind, contract Contract) {
	v.lock.Lock()
	v.contracts[kind] = contract
	v.lock.Unlock()
}

// ResolveState - the state a reference points to
func (v *Verifier) ResolveState(ref transactionrecord.StateRef) (*transactionrecord.TransactionState, error) {
	return v.resolver.ResolveState(ref)
}

// Resolve - build the ledger transaction
func (v *Verifier) Resolve(wtx *transaction.WireTransaction) (*LedgerTransaction, error) {
	tx := &LedgerTransaction{
		Id:         wtx.Id(),
		Notary:     wtx.Notary(),
		TimeWindow: wtx.TimeWindow(),
		Outputs:    wtx.Outputs(),
		Commands:   wtx.Commands(),
	}

	for _, ref := range wtx.Inputs() {
		state, err := v.resolver.ResolveState(ref)
		if nil != err {
			v.log.Warnf("resolve: tx: %s  input: %s  error: %s", tx.Id, ref, err)
			return nil, err
		}
		tx.Inputs = append(tx.Inputs, transactionrecord.StateAndRef{
			State: *state,
			Ref:   ref,
		})
	}

	for _, id := range wtx.Attachments() {
		data, err := v.resolver.ResolveAttachment(id)
		if nil != err {
			v.log.Warnf("resolve: tx: %s  attachment: %s  error: %s", tx.Id, id, err)
			return nil, err
		}
		tx.Attachments = append(tx.Attachments, Attachment{
			Id:   id,
			Data: data,
		})
	}
	return tx, nil
}

// Verify - resolve then check the structural rules and every contract
func (v *Verifier) Verify(wtx *transaction.WireTransaction) error {
	tx, err := v.Resolve(wtx)
	if nil != err {
		return err
	}
	return v.VerifyLedgerTransaction(tx)
}

func rejection(tx *LedgerTransaction, contract string, reason string) error {
	return &fault.ContractRejectionError{
		TxId:     tx.Id.String(),
		Contract: contract,
		Reason:   reason,
	}
}

// VerifyLedgerTransaction - structural rules then each contract once
func (v *Verifier) VerifyLedgerTransaction(tx *LedgerTransaction) error {
	seen := make(map[transactionrecord.StateRef]struct{}, len(tx.Inputs))
	for _, input := range tx.Inputs {
		if _, ok := seen[input.Ref]; ok {
			return rejection(tx, structureContract, "duplicate input: "+input.Ref.String())
		}
		seen[input.Ref] = struct{}{}

		if !identity.Equal(tx.Notary, input.State.Notary) {
			return rejection(tx, structureContract, "input: "+input.Ref.String()+" notary: "+input.State.Notary.String())
		}
	}

	for _, output := range tx.Outputs {
		if !identity.Equal(tx.Notary, output.Notary) {
			return rejection(tx, structureContract, fault.ErrNotaryChangeInOutputs.Error())
		}
	}

	if nil != tx.TimeWindow {
		if err := tx.TimeWindow.Validate(); nil != err {
			return rejection(tx, structureContract, err.Error())
		}
	}

	kinds := make(map[transactionrecord.StateKind]struct{})
	for _, input := range tx.Inputs {
		kinds[input.State.Data.Kind()] = struct{}{}
	}
	for _, output := range tx.Outputs {
		kinds[output.Data.Kind()] = struct{}{}
	}
	for _, command := range tx.Commands {
		kinds[command.Data.Kind().Contract()] = struct{}{}
	}

	ordered := make([]transactionrecord.StateKind, 0, len(kinds))
	for k := range kinds {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	v.lock.RLock()
	defer v.lock.RUnlock()

	for _, kind := range ordered {
		contract, ok := v.contracts[kind]
		if !ok {
			return rejection(tx, kind.String(), "no contract registered")
		}
		if err := contract.Verify(tx); nil != err {
			v.log.Debugf("verify: tx: %s  contract: %s  rejected: %s", tx.Id, kind, err)
			var detailed *fault.ContractRejectionError
			if errors.As(err, &detailed) {
				return err
			}
			return rejection(tx, kind.String(), err.Error())
		}
	}

	v.log.Debugf("verify: tx: %s  contracts: %d  accepted", tx.Id, len(ordered))
	return nil
}
