// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - resolve a transaction against the ledger and run
// its contracts
package ledger

import (
	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Resolver - source of earlier transaction outputs and attachments
//
// both return fault.ResolutionError detail for missing content
type Resolver interface {
	ResolveState(ref transactionrecord.StateRef) (*transactionrecord.TransactionState, error)
	ResolveAttachment(id merkle.Digest) ([]byte, error)
}

// Attachment - resolved attachment content
type Attachment struct {
	Id   merkle.Digest
	Data []byte
}

// LedgerTransaction - a transaction with its inputs and attachments resolved
type LedgerTransaction struct {
	Id          merkle.Digest
	Notary      *identity.Party
	TimeWindow  *transactionrecord.TimeWindow
	Inputs      []transactionrecord.StateAndRef
	Outputs     []transactionrecord.TransactionState
	Commands    []transactionrecord.Command
	Attachments []Attachment
}

// StateGroup - inputs and outputs that share a grouping key
type StateGroup struct {
	Key     string
	Inputs  []transactionrecord.ContractState
	Outputs []transactionrecord.ContractState
}

// GroupStates - inputs and outputs of a kind grouped by key, groups
// are in order of first appearance, inputs before outputs
func (tx *LedgerTransaction) GroupStates(kind transactionrecord.StateKind, key func(transactionrecord.ContractState) string) []*StateGroup {
	groups := make([]*StateGroup, 0)
	index := make(map[string]*StateGroup)
	find := func(s transactionrecord.ContractState) *StateGroup {
		k := key(s)
		g, ok := index[k]
		if !ok {
			g = &StateGroup{Key: k}
			index[k] = g
			groups = append(groups, g)
		}
		return g
	}
	for _, input := range tx.Inputs {
		if input.State.Data.Kind() == kind {
			g := find(input.State.Data)
			g.Inputs = append(g.Inputs, input.State.Data)
		}
	}
	for _, output := range tx.Outputs {
		if output.Data.Kind() == kind {
			g := find(output.Data)
			g.Outputs = append(g.Outputs, output.Data)
		}
	}
	return groups
}

// CommandsOfKind - commands of one kind in order
func (tx *LedgerTransaction) CommandsOfKind(kinds ...transactionrecord.CommandKind) []transactionrecord.Command {
	result := make([]transactionrecord.Command, 0)
	for _, command := range tx.Commands {
		for _, k := range kinds {
			if command.Data.Kind() == k {
				result = append(result, command)
				break
			}
		}
	}
	return result
}

// SignedBy - true if the key is a signer of any of the commands
func SignedBy(commands []transactionrecord.Command, key *account.Account) bool {
	for _, command := range commands {
		for _, signer := range command.Signers {
			if account.Equal(signer, key) {
				return true
			}
		}
	}
	return false
}
