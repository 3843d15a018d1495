// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package filtered - selective disclosure of transaction components
//
// every component leaf of the transaction is kept as its digest,
// revealed leaves also keep their content and the sibling path to the
// root of their group.  The transaction id commits to the number of
// leaves in each group, so after Verify the group and index of every
// leaf, hidden or not, can be relied on.
package filtered

import (
	"fmt"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transaction"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Predicate - decides which decoded components are revealed
type Predicate func(group transactionrecord.Group, component interface{}) bool

// Leaf - one component leaf, Content is nil when hidden
//
// Path leads from the digest to the root of the group's tree
type Leaf struct {
	Group   transactionrecord.Group  `json:"group"`
	Index   uint64                   `json:"index"`
	Digest  merkle.Digest            `json:"digest"`
	Content transactionrecord.Packed `json:"content,omitempty"`
	Path    []merkle.PathStep        `json:"path,omitempty"`
}

// Revealed - true if the leaf carries its content
func (l Leaf) Revealed() bool {
	return nil != l.Content
}

// Component - a decoded revealed component
type Component struct {
	Group transactionrecord.Group
	Index uint64
	Value interface{}
}

// FilteredTransaction - partial view that proves its revealed content
// belongs to the transaction id
type FilteredTransaction struct {
	id     merkle.Digest
	leaves []Leaf
}

// RevealGroups - predicate revealing every component of the groups
func RevealGroups(groups ...transactionrecord.Group) Predicate {
	return func(group transactionrecord.Group, component interface{}) bool {
		for _, g := range groups {
			if g == group {
				return true
			}
		}
		return false
	}
}

// Build - classify every component of the transaction
func Build(wtx *transaction.WireTransaction, predicate Predicate) (*FilteredTransaction, error) {
	components := wtx.Components()

	ftx := &FilteredTransaction{
		id:     wtx.Id(),
		leaves: make([]Leaf, len(components)),
	}
	for i, c := range components {
		value, err := Decode(c.Group, c.Data)
		if nil != err {
			return nil, err
		}
		ftx.leaves[i] = Leaf{
			Group:  c.Group,
			Index:  c.Index,
			Digest: c.Digest(),
		}
		if predicate(c.Group, value) {
			ftx.leaves[i].Content = append(transactionrecord.Packed{}, c.Data...)
			ftx.leaves[i].Path = wtx.GroupTree(c.Group).Path(int(c.Index))
		}
	}
	return ftx, nil
}

// Decode - packed component to its value:
//   inputs       transactionrecord.StateRef
//   outputs      transactionrecord.TransactionState
//   commands     transactionrecord.Command
//   attachments  merkle.Digest
//   notary       *identity.Party
//   time window  *transactionrecord.TimeWindow
//   signers      *account.Account
func Decode(group transactionrecord.Group, data transactionrecord.Packed) (interface{}, error) {
	switch group {
	case transactionrecord.InputsGroup:
		return transactionrecord.UnpackStateRef(data)
	case transactionrecord.OutputsGroup:
		return transactionrecord.UnpackTransactionState(data)
	case transactionrecord.CommandsGroup:
		return transactionrecord.UnpackCommand(data)
	case transactionrecord.AttachmentsGroup:
		r := transactionrecord.NewReader(data)
		d := r.Digest()
		return d, r.Finish()
	case transactionrecord.NotaryGroup:
		r := transactionrecord.NewReader(data)
		p := r.Party()
		return p, r.Finish()
	case transactionrecord.TimeWindowGroup:
		return transactionrecord.UnpackTimeWindow(data)
	case transactionrecord.SignersGroup:
		r := transactionrecord.NewReader(data)
		a := r.Account()
		return a, r.Finish()
	default:
		return nil, fault.ErrNotTransactionPack
	}
}

// Id - the transaction id the leaves commit to
func (ftx *FilteredTransaction) Id() merkle.Digest {
	return ftx.id
}

// Leaves - copy of all leaves in canonical order
func (ftx *FilteredTransaction) Leaves() []Leaf {
	return append([]Leaf{}, ftx.leaves...)
}

// Revealed - copy of the revealed leaves in canonical order
func (ftx *FilteredTransaction) Revealed() []Leaf {
	revealed := make([]Leaf, 0)
	for _, l := range ftx.leaves {
		if l.Revealed() {
			revealed = append(revealed, l)
		}
	}
	return revealed
}

// Components - decoded revealed content in canonical order
func (ftx *FilteredTransaction) Components() ([]Component, error) {
	components := make([]Component, 0)
	for _, l := range ftx.Revealed() {
		value, err := Decode(l.Group, l.Content)
		if nil != err {
			return nil, err
		}
		components = append(components, Component{
			Group: l.Group,
			Index: l.Index,
			Value: value,
		})
	}
	return components, nil
}

func (ftx *FilteredTransaction) failure(format string, arguments ...interface{}) error {
	return &fault.FilteredVerificationError{
		TxId:   ftx.id.String(),
		Reason: fmt.Sprintf(format, arguments...),
	}
}

// Verify - the revealed content hashes to its leaves, the leaves are
// in canonical order, every revealed path leads to its group root and
// the group digests lead to the id
func (ftx *FilteredTransaction) Verify() error {
	leaves := make(map[transactionrecord.Group][]merkle.Digest)

	for i, l := range ftx.leaves {
		if !l.Group.Valid() {
			return ftx.failure("leaf: %d  undefined group: %d", i, l.Group)
		}
		if i > 0 {
			previous := ftx.leaves[i-1]
			switch {
			case l.Group == previous.Group && l.Index != previous.Index+1:
				return ftx.failure("leaf: %d  %s index: %d after: %d", i, l.Group, l.Index, previous.Index)
			case l.Group < previous.Group:
				return ftx.failure("leaf: %d  group: %s after: %s", i, l.Group, previous.Group)
			case l.Group != previous.Group && 0 != l.Index:
				return ftx.failure("leaf: %d  %s starts at index: %d", i, l.Group, l.Index)
			}
		} else if 0 != l.Index {
			return ftx.failure("leaf: 0  %s starts at index: %d", l.Group, l.Index)
		}

		if l.Revealed() {
			if transaction.ComponentDigest(l.Group, l.Index, l.Content) != l.Digest {
				return ftx.failure("leaf: %d  %s[%d] content does not match digest", i, l.Group, l.Index)
			}
			if _, err := Decode(l.Group, l.Content); nil != err {
				return ftx.failure("leaf: %d  %s[%d] cannot decode: %s", i, l.Group, l.Index, err)
			}
		}
		leaves[l.Group] = append(leaves[l.Group], l.Digest)
	}

	groups, tree := transaction.CommitLeaves(leaves)
	if tree.Root() != ftx.id {
		return ftx.failure("merkle root does not match")
	}

	for i, l := range ftx.leaves {
		if l.Revealed() && !merkle.VerifyPath(groups[l.Group].Root(), l.Digest, l.Path) {
			return ftx.failure("leaf: %d  %s[%d] path does not lead to the group root", i, l.Group, l.Index)
		}
	}
	return nil
}

// ComponentCount - number of components in a group, revealed or not
//
// only meaningful once Verify has succeeded
func (ftx *FilteredTransaction) ComponentCount(group transactionrecord.Group) int {
	n := 0
	for _, l := range ftx.leaves {
		if l.Group == group {
			n += 1
		}
	}
	return n
}

// CheckAllComponentsVisible - verify, then require every component of
// the group to be revealed
func (ftx *FilteredTransaction) CheckAllComponentsVisible(group transactionrecord.Group) error {
	if !group.Valid() {
		return fault.ErrNotTransactionPack
	}
	if err := ftx.Verify(); nil != err {
		return err
	}
	for _, l := range ftx.leaves {
		if l.Group == group && !l.Revealed() {
			return fmt.Errorf("%w: tx: %s  %s[%d]", fault.ErrComponentHidden, ftx.id, l.Group, l.Index)
		}
	}
	return nil
}
