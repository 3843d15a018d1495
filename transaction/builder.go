// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"fmt"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
	"github.com/bitmark-inc/ledgertx/view"
)

// Builder - single owner accumulator for a transaction under construction
//
// not safe for concurrent use
type Builder struct {
	notary      *identity.Party
	inputs      []transactionrecord.StateAndRef
	outputs     []transactionrecord.TransactionState
	commands    []transactionrecord.Command
	attachments []merkle.Digest
	timeWindow  *transactionrecord.TimeWindow
	consumed    bool
}

// NewBuilder - start a transaction for a notary
func NewBuilder(notary *identity.Party) (*Builder, error) {
	if nil == notary || nil == notary.Key || nil == notary.Key.AccountInterface {
		return nil, fault.ErrMissingNotary
	}
	return &Builder{
		notary: notary,
	}, nil
}

func notaryMismatch(expected *identity.Party, actual *identity.Party) error {
	return &fault.NotaryMismatchError{
		Expected: expected.String(),
		Actual:   actual.String(),
	}
}

// every output must be bound to the transaction notary
func checkOutputNotaries(notary *identity.Party, outputs []transactionrecord.TransactionState) error {
	for _, output := range outputs {
		if !identity.Equal(notary, output.Notary) {
			return notaryMismatch(notary, output.Notary)
		}
	}
	return nil
}

// AddInputState - consume an existing state, it must be bound to the
// builder's notary and must not already be an input
func (b *Builder) AddInputState(input transactionrecord.StateAndRef) error {
	if b.consumed {
		return fault.ErrBuilderConsumed
	}
	if nil == input.State.Data {
		return fault.ErrUnknownStateKind
	}
	if !identity.Equal(b.notary, input.State.Notary) {
		return notaryMismatch(b.notary, input.State.Notary)
	}
	for _, existing := range b.inputs {
		if existing.Ref == input.Ref {
			return fmt.Errorf("%w: %s", fault.ErrDuplicateInput, input.Ref)
		}
	}
	b.inputs = append(b.inputs, input)
	return nil
}

// AddOutputState - create a new state governed by the builder's notary
func (b *Builder) AddOutputState(data transactionrecord.ContractState) error {
	if b.consumed {
		return fault.ErrBuilderConsumed
	}
	if nil == data {
		return fault.ErrUnknownStateKind
	}
	b.outputs = append(b.outputs, transactionrecord.TransactionState{
		Data:   data,
		Notary: b.notary,
	})
	return nil
}

// AddCommand - add a command and the keys required to sign for it
func (b *Builder) AddCommand(data transactionrecord.CommandData, signers ...*account.Account) error {
	if b.consumed {
		return fault.ErrBuilderConsumed
	}
	if nil == data {
		return fault.ErrUnknownCommandKind
	}
	for _, signer := range signers {
		if nil == signer || nil == signer.AccountInterface {
			return fault.ErrNotAPublicKey
		}
	}
	b.commands = append(b.commands, transactionrecord.Command{
		Data:    data,
		Signers: append([]*account.Account{}, signers...),
	})
	return nil
}

// AddAttachment - reference an attachment by its hash
func (b *Builder) AddAttachment(hash merkle.Digest) error {
	if b.consumed {
		return fault.ErrBuilderConsumed
	}
	b.attachments = append(b.attachments, hash)
	return nil
}

// SetTimeWindow - allowed exactly once
func (b *Builder) SetTimeWindow(w *transactionrecord.TimeWindow) error {
	if b.consumed {
		return fault.ErrBuilderConsumed
	}
	if nil != b.timeWindow {
		return fault.ErrTimeWindowAlreadySet
	}
	if nil == w {
		return fault.ErrInvalidTimeWindow
	}
	if err := w.Validate(); nil != err {
		return err
	}
	copied := *w
	b.timeWindow = &copied
	return nil
}

// Consumed - true once Assemble has succeeded
func (b *Builder) Consumed() bool {
	return b.consumed
}

// Notary - the notary all states are bound to
func (b *Builder) Notary() *identity.Party {
	return b.notary
}

// TimeWindow - copy of the window or nil
func (b *Builder) TimeWindow() *transactionrecord.TimeWindow {
	if nil == b.timeWindow {
		return nil
	}
	w := *b.timeWindow
	return &w
}

// Inputs - copy of the inputs in insertion order
func (b *Builder) Inputs() []transactionrecord.StateAndRef {
	return append([]transactionrecord.StateAndRef{}, b.inputs...)
}

// Outputs - copy of the outputs in insertion order
func (b *Builder) Outputs() []transactionrecord.TransactionState {
	return append([]transactionrecord.TransactionState{}, b.outputs...)
}

// Commands - copy of the commands in insertion order
func (b *Builder) Commands() []transactionrecord.Command {
	return copyCommands(b.commands)
}

// Attachments - copy of the attachment hashes in insertion order
func (b *Builder) Attachments() []merkle.Digest {
	return append([]merkle.Digest{}, b.attachments...)
}

// Status - a builder is never signed
func (b *Builder) Status() transactionrecord.Status {
	return transactionrecord.Incomplete
}

// View - read only query facade
func (b *Builder) View() *view.View {
	return view.New(b)
}

func copyCommands(commands []transactionrecord.Command) []transactionrecord.Command {
	c := make([]transactionrecord.Command, len(commands))
	for i, command := range commands {
		c[i] = transactionrecord.Command{
			Data:    command.Data,
			Signers: append([]*account.Account{}, command.Signers...),
		}
	}
	return c
}

// Pack - encoding used to send an unfinished builder to a peer
func (b *Builder) Pack() (transactionrecord.Packed, error) {
	if b.consumed {
		return nil, fault.ErrBuilderConsumed
	}
	message := transactionrecord.AppendUint64(nil, builderTag)
	message = transactionrecord.AppendParty(message, b.notary)
	message = appendTimeWindow(message, b.timeWindow)
	message = appendList(message, packInputs(b.inputs))
	message = appendList(message, packOutputs(b.outputs))
	message = appendList(message, packCommands(b.commands))
	return appendList(message, packDigests(b.attachments)), nil
}

// UnpackBuilder - decode a record produced by Builder.Pack
//
// every input is checked against the notary as if added locally and
// every output must be bound to the same notary
func UnpackBuilder(record transactionrecord.Packed) (*Builder, error) {
	r := transactionrecord.NewReader(record)
	if err := readTag(r, builderTag); nil != err {
		return nil, err
	}
	b, err := NewBuilder(r.Party())
	if nil != r.Err() {
		return nil, r.Err()
	}
	if nil != err {
		return nil, err
	}

	b.timeWindow, err = readTimeWindow(r)
	if nil != err {
		return nil, err
	}

	content, err := readContent(r)
	if nil != err {
		return nil, err
	}
	if err := r.Finish(); nil != err {
		return nil, err
	}

	for _, p := range content.inputs {
		input, err := transactionrecord.UnpackStateAndRef(p)
		if nil != err {
			return nil, err
		}
		if err := b.AddInputState(input); nil != err {
			return nil, err
		}
	}
	b.outputs, err = unpackOutputs(content.outputs)
	if nil != err {
		return nil, err
	}
	if err := checkOutputNotaries(b.notary, b.outputs); nil != err {
		return nil, err
	}
	b.commands, err = unpackCommands(content.commands)
	if nil != err {
		return nil, err
	}
	b.attachments, err = unpackDigests(content.attachments)
	if nil != err {
		return nil, err
	}
	return b, nil
}

// the four packed component lists
type packedContent struct {
	inputs      []transactionrecord.Packed
	outputs     []transactionrecord.Packed
	commands    []transactionrecord.Packed
	attachments []transactionrecord.Packed
}

func readContent(r *transactionrecord.Reader) (*packedContent, error) {
	c := &packedContent{
		inputs:      readList(r),
		outputs:     readList(r),
		commands:    readList(r),
		attachments: readList(r),
	}
	if nil != r.Err() {
		return nil, r.Err()
	}
	return c, nil
}

func packDigests(digests []merkle.Digest) []transactionrecord.Packed {
	p := make([]transactionrecord.Packed, len(digests))
	for i, d := range digests {
		p[i] = transactionrecord.AppendDigest(nil, d)
	}
	return p
}

func unpackDigests(items []transactionrecord.Packed) ([]merkle.Digest, error) {
	digests := make([]merkle.Digest, 0, len(items))
	for _, p := range items {
		r := transactionrecord.NewReader(p)
		d := r.Digest()
		if err := r.Finish(); nil != err {
			return nil, err
		}
		digests = append(digests, d)
	}
	return digests, nil
}

func unpackOutputs(items []transactionrecord.Packed) ([]transactionrecord.TransactionState, error) {
	outputs := make([]transactionrecord.TransactionState, 0, len(items))
	for _, p := range items {
		output, err := transactionrecord.UnpackTransactionState(p)
		if nil != err {
			return nil, err
		}
		outputs = append(outputs, output)
	}
	return outputs, nil
}

func unpackCommands(items []transactionrecord.Packed) ([]transactionrecord.Command, error) {
	commands := make([]transactionrecord.Command, 0, len(items))
	for _, p := range items {
		command, err := transactionrecord.UnpackCommand(p)
		if nil != err {
			return nil, err
		}
		commands = append(commands, command)
	}
	return commands, nil
}

func unpackRefs(items []transactionrecord.Packed) ([]transactionrecord.StateRef, error) {
	refs := make([]transactionrecord.StateRef, 0, len(items))
	for _, p := range items {
		ref, err := transactionrecord.UnpackStateRef(p)
		if nil != err {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}
