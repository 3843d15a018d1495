// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/signature"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Merge - adopt content a peer appended to this builder
//
// the notary must match, the local inputs, outputs, commands and
// attachments must each be a prefix of the received lists, and a time
// window set on both sides must be the same.  Nothing is adopted
// unless every check passes.  The result must still be assembled and
// verified before it is trusted.
func (b *Builder) Merge(received *Builder) error {
	if nil == received {
		return fault.ErrNothingToMerge
	}
	if b.consumed || received.consumed {
		return fault.ErrBuilderConsumed
	}

	if !identity.Equal(b.notary, received.notary) {
		warnf("merge builder: notary: %s  received: %s", b.notary, received.notary)
		return notaryMismatch(b.notary, received.notary)
	}

	if nil != b.timeWindow && nil != received.timeWindow && !b.timeWindow.Equal(received.timeWindow) {
		warnf("merge builder: time window: %s  received: %s", b.timeWindow, received.timeWindow)
		return &fault.TamperedError{
			Component: transactionrecord.TimeWindowGroup.String(),
			Local:     1,
			Received:  1,
		}
	}

	checks := []struct {
		group    transactionrecord.Group
		local    []transactionrecord.Packed
		received []transactionrecord.Packed
	}{
		{transactionrecord.InputsGroup, packInputs(b.inputs), packInputs(received.inputs)},
		{transactionrecord.OutputsGroup, packOutputs(b.outputs), packOutputs(received.outputs)},
		{transactionrecord.CommandsGroup, packCommands(b.commands), packCommands(received.commands)},
		{transactionrecord.AttachmentsGroup, packDigests(b.attachments), packDigests(received.attachments)},
	}
	for _, c := range checks {
		if err := checkPrefix(c.group.String(), c.local, c.received); nil != err {
			warnf("merge builder: %s", err)
			return err
		}
	}

	newInputs := received.inputs[len(b.inputs):]
	seen := make(map[transactionrecord.StateRef]struct{}, len(received.inputs))
	for _, input := range received.inputs {
		if _, ok := seen[input.Ref]; ok {
			return fault.ErrDuplicateInput
		}
		seen[input.Ref] = struct{}{}
	}
	for _, input := range newInputs {
		if !identity.Equal(b.notary, input.State.Notary) {
			return notaryMismatch(b.notary, input.State.Notary)
		}
	}

	newOutputs := received.outputs[len(b.outputs):]
	if err := checkOutputNotaries(b.notary, newOutputs); nil != err {
		warnf("merge builder: %s", err)
		return err
	}
	newCommands := copyCommands(received.commands[len(b.commands):])
	newAttachments := received.attachments[len(b.attachments):]

	b.inputs = append(b.inputs, newInputs...)
	b.outputs = append(b.outputs, newOutputs...)
	b.commands = append(b.commands, newCommands...)
	b.attachments = append(b.attachments, newAttachments...)
	if nil == b.timeWindow && nil != received.timeWindow {
		w := *received.timeWindow
		b.timeWindow = &w
	}

	debugf("merge builder: adopted inputs: %d  outputs: %d  commands: %d  attachments: %d",
		len(newInputs), len(newOutputs), len(newCommands), len(newAttachments))
	return nil
}

// MergeSignatures - adopt signatures a peer appended
//
// every received signature must verify against this transaction's id
// and the local signatures must be a prefix of the received list
func (stx *SignedTransaction) MergeSignatures(received *SignedTransaction) error {
	if nil == received {
		return fault.ErrNothingToMerge
	}
	receivedSignatures := received.Signatures()
	for _, sig := range receivedSignatures {
		if err := sig.Verify(stx.wtx.id); nil != err {
			warnf("merge signatures: tx: %s  rejected: %s", stx.wtx.id, err)
			return err
		}
	}

	stx.lock.Lock()
	defer stx.lock.Unlock()

	err := checkPrefix("signatures", packSignatures(stx.signatures), packSignatures(receivedSignatures))
	if nil != err {
		warnf("merge signatures: tx: %s  %s", stx.wtx.id, err)
		return err
	}

	added := receivedSignatures[len(stx.signatures):]
	stx.signatures = append(stx.signatures, added...)

	debugf("merge signatures: tx: %s  adopted: %d  total: %d", stx.wtx.id, len(added), len(stx.signatures))
	return nil
}

func packSignatures(signatures []*signature.Signature) []transactionrecord.Packed {
	p := make([]transactionrecord.Packed, len(signatures))
	for i, sig := range signatures {
		p[i] = sig.Pack()
	}
	return p
}
