// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/signature"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
	"github.com/bitmark-inc/ledgertx/view"
)

// SignedTransaction - a wire transaction and its signatures
//
// the signature list only grows; appends are serialised and readers
// may run concurrently
type SignedTransaction struct {
	lock sync.RWMutex // protects signatures

	wtx        *WireTransaction
	inputs     []transactionrecord.StateAndRef
	signatures []*signature.Signature
}

func newSignedTransaction(wtx *WireTransaction, inputs []transactionrecord.StateAndRef) *SignedTransaction {
	return &SignedTransaction{
		wtx:        wtx,
		inputs:     inputs,
		signatures: make([]*signature.Signature, 0, len(wtx.signers)),
	}
}

// Id - the transaction id
func (stx *SignedTransaction) Id() merkle.Digest {
	return stx.wtx.id
}

// Wire - the canonical transaction
func (stx *SignedTransaction) Wire() *WireTransaction {
	return stx.wtx
}

// Notary - the notary all states are bound to
func (stx *SignedTransaction) Notary() *identity.Party {
	return stx.wtx.notary
}

// TimeWindow - copy of the window or nil
func (stx *SignedTransaction) TimeWindow() *transactionrecord.TimeWindow {
	return stx.wtx.TimeWindow()
}

// Inputs - copy of the consumed states with their references
//
// on a received transaction these are as the sender packed them until
// VerifyInputs or VerifyTransaction has checked them
func (stx *SignedTransaction) Inputs() []transactionrecord.StateAndRef {
	return append([]transactionrecord.StateAndRef{}, stx.inputs...)
}

// Outputs - copy of the created states
func (stx *SignedTransaction) Outputs() []transactionrecord.TransactionState {
	return stx.wtx.Outputs()
}

// Commands - copy of the commands
func (stx *SignedTransaction) Commands() []transactionrecord.Command {
	return stx.wtx.Commands()
}

// Attachments - copy of the attachment hashes
func (stx *SignedTransaction) Attachments() []merkle.Digest {
	return stx.wtx.Attachments()
}

// RequiredSigners - keys that must sign
func (stx *SignedTransaction) RequiredSigners() []*account.Account {
	return stx.wtx.RequiredSigners()
}

// View - read only query facade
func (stx *SignedTransaction) View() *view.View {
	return view.New(stx)
}

// Signatures - copy of the signatures in the order they were added
func (stx *SignedTransaction) Signatures() []*signature.Signature {
	stx.lock.RLock()
	defer stx.lock.RUnlock()
	return append([]*signature.Signature{}, stx.signatures...)
}

// AddSignature - append a signature that verifies against the id
//
// a signature identical to one already present is ignored
func (stx *SignedTransaction) AddSignature(sig *signature.Signature) error {
	if nil == sig {
		return fault.ErrInvalidSignature
	}
	if err := sig.Verify(stx.wtx.id); nil != err {
		warnf("add signature: tx: %s  rejected: %s", stx.wtx.id, err)
		return err
	}

	stx.lock.Lock()
	defer stx.lock.Unlock()

	for _, existing := range stx.signatures {
		if signature.Equal(existing, sig) {
			return nil
		}
	}
	stx.signatures = append(stx.signatures, sig)

	debugf("add signature: tx: %s  signer: %s  count: %d", stx.wtx.id, sig.Signer, len(stx.signatures))
	return nil
}

// MissingSignatures - required signers without a signature, in
// required signer order
func (stx *SignedTransaction) MissingSignatures() []*account.Account {
	return missingSigners(stx.wtx.signers, stx.Signatures())
}

// Status - recomputed from the current signatures on every call
func (stx *SignedTransaction) Status() transactionrecord.Status {
	return status(stx.MissingSignatures(), stx.wtx.notary)
}

// CheckSignatures - every stored signature still verifies
func (stx *SignedTransaction) CheckSignatures() error {
	for _, sig := range stx.Signatures() {
		if err := sig.Verify(stx.wtx.id); nil != err {
			return err
		}
	}
	return nil
}

// VerifySignatures - every required signer has a valid signature
func (stx *SignedTransaction) VerifySignatures() error {
	return stx.VerifySignaturesExcept()
}

// VerifySignaturesExcept - stored signatures are valid and every
// required signer apart from the excluded keys has signed
func (stx *SignedTransaction) VerifySignaturesExcept(excluded ...*account.Account) error {
	if err := stx.CheckSignatures(); nil != err {
		return err
	}

	skip := make(map[string]struct{}, len(excluded))
	for _, key := range excluded {
		if nil != key && nil != key.AccountInterface {
			skip[key.MapKey()] = struct{}{}
		}
	}

	absent := make([]string, 0)
	for _, key := range stx.MissingSignatures() {
		if _, ok := skip[key.MapKey()]; !ok {
			absent = append(absent, key.String())
		}
	}
	if 0 != len(absent) {
		return &fault.MissingSignaturesError{
			Keys: absent,
		}
	}
	return nil
}

// VerifyTransaction - signatures are valid and the ledger verifier
// accepts the content as it can be resolved now
//
// the carried input states are also checked when the verifier is a
// StateResolver
func (stx *SignedTransaction) VerifyTransaction(verifier LedgerVerifier) error {
	if err := stx.CheckSignatures(); nil != err {
		return err
	}
	if resolver, ok := verifier.(StateResolver); ok {
		if err := stx.VerifyInputs(resolver); nil != err {
			warnf("verify transaction: tx: %s  error: %s", stx.wtx.id, err)
			return err
		}
	}
	if err := verifier.Verify(stx.wtx); nil != err {
		warnf("verify transaction: tx: %s  error: %s", stx.wtx.id, err)
		return err
	}
	return nil
}

// VerifyInputs - every carried input state is the state the resolver
// holds for its reference
func (stx *SignedTransaction) VerifyInputs(resolver StateResolver) error {
	for _, input := range stx.inputs {
		state, err := resolver.ResolveState(input.Ref)
		if nil != err {
			return err
		}
		if nil == state || !bytes.Equal(state.Pack(), input.State.Pack()) {
			return fmt.Errorf("%w: %s", fault.ErrInputStateMismatch, input.Ref)
		}
	}
	return nil
}

// Pack - wire transaction, resolved inputs and signatures
func (stx *SignedTransaction) Pack() transactionrecord.Packed {
	message := transactionrecord.AppendUint64(nil, signedTag)
	message = transactionrecord.AppendBytes(message, stx.wtx.Pack())
	message = appendList(message, packInputs(stx.inputs))
	return appendList(message, packSignatures(stx.Signatures()))
}

// UnpackSignedTransaction - decode a record produced by Pack
//
// the resolved inputs must match the wire inputs and every signature
// must verify against the recomputed id
func UnpackSignedTransaction(record transactionrecord.Packed) (*SignedTransaction, error) {
	r := transactionrecord.NewReader(record)
	if err := readTag(r, signedTag); nil != err {
		return nil, err
	}
	wireData := r.Packed()
	inputData := readList(r)
	signatureData := readList(r)
	if err := r.Finish(); nil != err {
		return nil, err
	}

	wtx, err := UnpackWireTransaction(wireData)
	if nil != err {
		return nil, err
	}

	if len(inputData) != len(wtx.inputs) {
		return nil, fault.ErrNotTransactionPack
	}
	inputs := make([]transactionrecord.StateAndRef, len(inputData))
	for i, p := range inputData {
		inputs[i], err = transactionrecord.UnpackStateAndRef(p)
		if nil != err {
			return nil, err
		}
		if inputs[i].Ref != wtx.inputs[i] {
			return nil, fault.ErrNotTransactionPack
		}
	}

	stx := newSignedTransaction(wtx, inputs)
	for _, p := range signatureData {
		sig, err := signature.Unpack(p)
		if nil != err {
			return nil, err
		}
		if err := sig.Verify(wtx.id); nil != err {
			return nil, err
		}
		stx.signatures = append(stx.signatures, sig)
	}
	return stx, nil
}
