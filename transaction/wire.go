// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
	"github.com/bitmark-inc/ledgertx/util"
)

// WireTransaction - immutable canonical form of a transaction
//
// each group has a merkle tree over its component leaves, the id is the
// root of the tree over the group digests, so it is both the content
// hash and the commitment used by filtered transactions
type WireTransaction struct {
	id          merkle.Digest
	notary      *identity.Party
	timeWindow  *transactionrecord.TimeWindow
	inputs      []transactionrecord.StateRef
	outputs     []transactionrecord.TransactionState
	commands    []transactionrecord.Command
	attachments []merkle.Digest
	signers     []*account.Account
	components  []Component
	groups      map[transactionrecord.Group]*merkle.Tree
	tree        *merkle.Tree
}

// Component - one merkle leaf: group, index within the group and the
// packed component
type Component struct {
	Group transactionrecord.Group
	Index uint64
	Data  transactionrecord.Packed
}

// ComponentDigest - leaf digest of a component
//
//   SHA3-256( 0x00 ++ Varint64(group) ++ Varint64(index) ++ data )
func ComponentDigest(group transactionrecord.Group, index uint64, data []byte) merkle.Digest {
	leaf := util.ToVarint64(uint64(group))
	leaf = append(leaf, util.ToVarint64(index)...)
	leaf = append(leaf, data...)
	return merkle.LeafDigest(leaf)
}

// GroupDigest - commitment to the leaves of one group
//
//   SHA3-256( 0x02 ++ Varint64(group) ++ Varint64(count) ++ root )
func GroupDigest(group transactionrecord.Group, count uint64, root merkle.Digest) merkle.Digest {
	buffer := []byte{merkle.GroupPrefix}
	buffer = append(buffer, util.ToVarint64(uint64(group))...)
	buffer = append(buffer, util.ToVarint64(count)...)
	buffer = append(buffer, root[:]...)
	return merkle.NewDigest(buffer)
}

// CommitLeaves - a tree for each group over its leaf digests in index
// order and the tree over the group digests in canonical group order
//
// the root of the second tree is the transaction id; a group without
// leaves still contributes its digest
func CommitLeaves(leaves map[transactionrecord.Group][]merkle.Digest) (map[transactionrecord.Group]*merkle.Tree, *merkle.Tree) {
	groups := make(map[transactionrecord.Group]*merkle.Tree)
	digests := make([]merkle.Digest, 0)
	for _, group := range transactionrecord.Groups() {
		tree := merkle.NewTree(leaves[group])
		groups[group] = tree
		digests = append(digests, GroupDigest(group, uint64(tree.Leaves()), tree.Root()))
	}
	return groups, merkle.NewTree(digests)
}

// Digest - leaf digest of the component
func (c Component) Digest() merkle.Digest {
	return ComponentDigest(c.Group, c.Index, c.Data)
}

// the slices passed are owned by the new transaction
func newWireTransaction(
	notary *identity.Party,
	timeWindow *transactionrecord.TimeWindow,
	inputs []transactionrecord.StateRef,
	outputs []transactionrecord.TransactionState,
	commands []transactionrecord.Command,
	attachments []merkle.Digest,
) *WireTransaction {
	wtx := &WireTransaction{
		notary:      notary,
		timeWindow:  timeWindow,
		inputs:      inputs,
		outputs:     outputs,
		commands:    commands,
		attachments: attachments,
	}
	wtx.signers = requiredSigners(notary, len(inputs), commands)
	wtx.components = wtx.buildComponents()

	leaves := make(map[transactionrecord.Group][]merkle.Digest)
	for _, c := range wtx.components {
		leaves[c.Group] = append(leaves[c.Group], c.Digest())
	}
	wtx.groups, wtx.tree = CommitLeaves(leaves)
	wtx.id = wtx.tree.Root()
	return wtx
}

// union of command signers in first seen order, plus the notary when
// states are consumed
func requiredSigners(notary *identity.Party, inputCount int, commands []transactionrecord.Command) []*account.Account {
	seen := make(map[string]struct{})
	signers := make([]*account.Account, 0)
	add := func(key *account.Account) {
		if nil == key || nil == key.AccountInterface {
			return
		}
		k := key.MapKey()
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		signers = append(signers, key)
	}
	for _, command := range commands {
		for _, signer := range command.Signers {
			add(signer)
		}
	}
	if inputCount > 0 {
		add(notary.Key)
	}
	return signers
}

// components in canonical order: by group then by index
func (wtx *WireTransaction) buildComponents() []Component {
	components := make([]Component, 0)
	add := func(group transactionrecord.Group, items []transactionrecord.Packed) {
		for i, data := range items {
			components = append(components, Component{
				Group: group,
				Index: uint64(i),
				Data:  data,
			})
		}
	}
	add(transactionrecord.InputsGroup, packRefs(wtx.inputs))
	add(transactionrecord.OutputsGroup, packOutputs(wtx.outputs))
	add(transactionrecord.CommandsGroup, packCommands(wtx.commands))
	add(transactionrecord.AttachmentsGroup, packDigests(wtx.attachments))
	add(transactionrecord.NotaryGroup, []transactionrecord.Packed{transactionrecord.AppendParty(nil, wtx.notary)})
	if nil != wtx.timeWindow {
		add(transactionrecord.TimeWindowGroup, []transactionrecord.Packed{wtx.timeWindow.Pack()})
	}
	signers := make([]transactionrecord.Packed, len(wtx.signers))
	for i, signer := range wtx.signers {
		signers[i] = transactionrecord.AppendAccount(nil, signer)
	}
	add(transactionrecord.SignersGroup, signers)
	return components
}

// Id - the transaction id
func (wtx *WireTransaction) Id() merkle.Digest {
	return wtx.id
}

// Notary - the notary all states are bound to
func (wtx *WireTransaction) Notary() *identity.Party {
	return wtx.notary
}

// TimeWindow - copy of the window or nil
func (wtx *WireTransaction) TimeWindow() *transactionrecord.TimeWindow {
	if nil == wtx.timeWindow {
		return nil
	}
	w := *wtx.timeWindow
	return &w
}

// Inputs - copy of the consumed state references
func (wtx *WireTransaction) Inputs() []transactionrecord.StateRef {
	return append([]transactionrecord.StateRef{}, wtx.inputs...)
}

// Outputs - copy of the created states
func (wtx *WireTransaction) Outputs() []transactionrecord.TransactionState {
	return append([]transactionrecord.TransactionState{}, wtx.outputs...)
}

// Commands - copy of the commands
func (wtx *WireTransaction) Commands() []transactionrecord.Command {
	return copyCommands(wtx.commands)
}

// Attachments - copy of the attachment hashes
func (wtx *WireTransaction) Attachments() []merkle.Digest {
	return append([]merkle.Digest{}, wtx.attachments...)
}

// RequiredSigners - copy of the deduplicated required signer keys
func (wtx *WireTransaction) RequiredSigners() []*account.Account {
	return append([]*account.Account{}, wtx.signers...)
}

// Components - copy of the merkle leaves in canonical order
func (wtx *WireTransaction) Components() []Component {
	return append([]Component{}, wtx.components...)
}

// MerkleTree - the tree over the group digests, its root is the id
func (wtx *WireTransaction) MerkleTree() *merkle.Tree {
	return wtx.tree
}

// GroupTree - the tree over the leaf digests of one group
//
// returns nil for an undefined group
func (wtx *WireTransaction) GroupTree(group transactionrecord.Group) *merkle.Tree {
	return wtx.groups[group]
}

// OutRef - an output as it will be referenced by a later transaction
func (wtx *WireTransaction) OutRef(index int) (transactionrecord.StateAndRef, error) {
	if index < 0 || index >= len(wtx.outputs) {
		return transactionrecord.StateAndRef{}, &fault.IndexOutOfRangeError{
			Component: transactionrecord.OutputsGroup.String(),
			Index:     index,
			Length:    len(wtx.outputs),
		}
	}
	return transactionrecord.StateAndRef{
		State: wtx.outputs[index],
		Ref: transactionrecord.StateRef{
			TxId:  wtx.id,
			Index: uint64(index),
		},
	}, nil
}

// Pack - content only, the id and the signers are derived on unpack
func (wtx *WireTransaction) Pack() transactionrecord.Packed {
	message := transactionrecord.AppendUint64(nil, wireTag)
	message = transactionrecord.AppendParty(message, wtx.notary)
	message = appendTimeWindow(message, wtx.timeWindow)
	message = appendList(message, packRefs(wtx.inputs))
	message = appendList(message, packOutputs(wtx.outputs))
	message = appendList(message, packCommands(wtx.commands))
	return appendList(message, packDigests(wtx.attachments))
}

// UnpackWireTransaction - decode a record produced by Pack and
// recompute its id
func UnpackWireTransaction(record transactionrecord.Packed) (*WireTransaction, error) {
	r := transactionrecord.NewReader(record)
	if err := readTag(r, wireTag); nil != err {
		return nil, err
	}
	notary := r.Party()
	if nil != r.Err() {
		return nil, r.Err()
	}
	if nil == notary || nil == notary.Key {
		return nil, fault.ErrMissingNotary
	}
	timeWindow, err := readTimeWindow(r)
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

	inputs, err := unpackRefs(content.inputs)
	if nil != err {
		return nil, err
	}
	outputs, err := unpackOutputs(content.outputs)
	if nil != err {
		return nil, err
	}
	if err := checkOutputNotaries(notary, outputs); nil != err {
		return nil, err
	}
	commands, err := unpackCommands(content.commands)
	if nil != err {
		return nil, err
	}
	attachments, err := unpackDigests(content.attachments)
	if nil != err {
		return nil, err
	}
	return newWireTransaction(notary, timeWindow, inputs, outputs, commands, attachments), nil
}
