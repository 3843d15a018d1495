// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package view_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/fixtures"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
	"github.com/bitmark-inc/ledgertx/view"
)

type source struct {
	inputs      []transactionrecord.StateAndRef
	outputs     []transactionrecord.TransactionState
	commands    []transactionrecord.Command
	attachments []merkle.Digest
}

func (s *source) Notary() *identity.Party                       { return fixtures.Notary }
func (s *source) TimeWindow() *transactionrecord.TimeWindow     { return nil }
func (s *source) Inputs() []transactionrecord.StateAndRef       { return s.inputs }
func (s *source) Outputs() []transactionrecord.TransactionState { return s.outputs }
func (s *source) Commands() []transactionrecord.Command         { return s.commands }
func (s *source) Attachments() []merkle.Digest                  { return s.attachments }
func (s *source) Status() transactionrecord.Status              { return transactionrecord.Incomplete }

func output(data transactionrecord.ContractState) transactionrecord.TransactionState {
	return transactionrecord.TransactionState{Data: data, Notary: fixtures.Notary}
}

func newView() *view.View {
	return view.New(&source{
		inputs: []transactionrecord.StateAndRef{
			fixtures.Input(1, fixtures.Notary, fixtures.Alice.Key),
		},
		outputs: []transactionrecord.TransactionState{
			output(fixtures.Cash(100, "USD", fixtures.Alice.Key)),
			output(fixtures.Linear("a", 1, fixtures.Alice.Key)),
			output(fixtures.Cash(200, "USD", fixtures.Bob.Key)),
			output(fixtures.Cash(300, "EUR", fixtures.Bob.Key)),
		},
		commands: []transactionrecord.Command{
			{Data: &transactionrecord.CashMove{}, Signers: nil},
			{Data: &transactionrecord.LinearUpdate{}, Signers: nil},
		},
		attachments: []merkle.Digest{merkle.NewDigest([]byte("doc"))},
	})
}

func ownedBy(p *identity.Party) view.StatePredicate {
	return func(s transactionrecord.ContractState) bool {
		cash, ok := s.(*transactionrecord.CashState)
		return ok && cash.Owner == p.Key
	}
}

func TestIndexedAccess(t *testing.T) {
	v := newView()

	_, err := v.Input(0)
	assert.Nil(t, err, "input 0")
	o, err := v.Output(3)
	assert.Nil(t, err, "output 3")
	assert.Equal(t, "EUR", o.Data.(*transactionrecord.CashState).Currency, "output 3")
	_, err = v.Command(1)
	assert.Nil(t, err, "command 1")
	_, err = v.Attachment(0)
	assert.Nil(t, err, "attachment 0")

	_, err = v.Input(1)
	assert.True(t, fault.IsErrIndex(err), "input 1: %v", err)
	_, err = v.Output(-1)
	assert.True(t, fault.IsErrIndex(err), "output -1: %v", err)
	_, err = v.Command(2)
	assert.True(t, fault.IsErrIndex(err), "command 2: %v", err)
	_, err = v.Attachment(1)
	assert.True(t, fault.IsErrIndex(err), "attachment 1: %v", err)

	var detail *fault.IndexOutOfRangeError
	assert.True(t, errors.As(err, &detail), "no detail")
	assert.Equal(t, "attachments", detail.Component, "component")
	assert.Equal(t, 1, detail.Index, "index")
	assert.Equal(t, 1, detail.Length, "length")
}

func TestOfKindPreservesOrder(t *testing.T) {
	v := newView()

	cash := v.OutputsOfKind(transactionrecord.CashStateKind)
	assert.Equal(t, 3, len(cash), "cash count")
	amounts := []uint64{}
	for _, c := range cash {
		amounts = append(amounts, c.Data.(*transactionrecord.CashState).Amount)
	}
	assert.Equal(t, []uint64{100, 200, 300}, amounts, "order")

	// restartable
	assert.Equal(t, cash, v.OutputsOfKind(transactionrecord.CashStateKind), "second query")

	assert.Equal(t, 1, len(v.InputsOfKind(transactionrecord.LinearStateKind)), "linear inputs")
	assert.Equal(t, 0, len(v.InputsOfKind(transactionrecord.CashStateKind)), "cash inputs")
	assert.Equal(t, 1, len(v.CommandsOfKind(transactionrecord.CashMoveKind)), "cash moves")
	assert.Equal(t, 0, len(v.CommandsOfKind(transactionrecord.CashIssueKind)), "cash issues")
}

func TestFindOne(t *testing.T) {
	v := newView()

	found, err := v.FindOutput(transactionrecord.CashStateKind, ownedBy(fixtures.Alice))
	assert.Nil(t, err, "alice")
	assert.Equal(t, uint64(100), found.Data.(*transactionrecord.CashState).Amount, "alice amount")

	_, err = v.FindOutput(transactionrecord.CashStateKind, ownedBy(fixtures.Bob))
	assert.True(t, fault.IsErrAmbiguousMatch(err), "bob: %v", err)
	var detail *fault.AmbiguousMatchCountError
	assert.True(t, errors.As(err, &detail), "no detail")
	assert.Equal(t, 2, detail.Count, "count")

	_, err = v.FindOutput(transactionrecord.CashStateKind, ownedBy(fixtures.Charlie))
	assert.True(t, fault.IsErrAmbiguousMatch(err), "charlie: %v", err)

	_, err = v.FindInput(transactionrecord.LinearStateKind, nil)
	assert.Nil(t, err, "linear input")

	_, err = v.FindCommand(transactionrecord.LinearUpdateKind, func(c transactionrecord.Command) bool { return 0 == len(c.Signers) })
	assert.Nil(t, err, "linear command")
	_, err = v.FindCommand(transactionrecord.PaperMoveKind, nil)
	assert.True(t, fault.IsErrAmbiguousMatch(err), "paper command: %v", err)
}
