// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package view - typed read only queries over a transaction
//
// queries select by the closed set of state and command kinds, no
// reflection is involved
package view

import (
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Source - anything the view can read, the accessors must return copies
type Source interface {
	Notary() *identity.Party
	TimeWindow() *transactionrecord.TimeWindow
	Inputs() []transactionrecord.StateAndRef
	Outputs() []transactionrecord.TransactionState
	Commands() []transactionrecord.Command
	Attachments() []merkle.Digest
	Status() transactionrecord.Status
}

// StatePredicate - caller condition over a state payload
type StatePredicate func(state transactionrecord.ContractState) bool

// CommandPredicate - caller condition over a command
type CommandPredicate func(command transactionrecord.Command) bool

// View - read only facade, holds no state of its own
type View struct {
	source Source
}

// New - view over a source
func New(source Source) *View {
	return &View{
		source: source,
	}
}

// Notary - the transaction notary
func (v *View) Notary() *identity.Party {
	return v.source.Notary()
}

// TimeWindow - the time window or nil
func (v *View) TimeWindow() *transactionrecord.TimeWindow {
	return v.source.TimeWindow()
}

// Status - signing status of the source
func (v *View) Status() transactionrecord.Status {
	return v.source.Status()
}

func outOfRange(group transactionrecord.Group, index int, length int) error {
	return &fault.IndexOutOfRangeError{
		Component: group.String(),
		Index:     index,
		Length:    length,
	}
}

// Input - indexed input
func (v *View) Input(index int) (transactionrecord.StateAndRef, error) {
	inputs := v.source.Inputs()
	if index < 0 || index >= len(inputs) {
		return transactionrecord.StateAndRef{}, outOfRange(transactionrecord.InputsGroup, index, len(inputs))
	}
	return inputs[index], nil
}

// Output - indexed output
func (v *View) Output(index int) (transactionrecord.TransactionState, error) {
	outputs := v.source.Outputs()
	if index < 0 || index >= len(outputs) {
		return transactionrecord.TransactionState{}, outOfRange(transactionrecord.OutputsGroup, index, len(outputs))
	}
	return outputs[index], nil
}

// Command - indexed command
func (v *View) Command(index int) (transactionrecord.Command, error) {
	commands := v.source.Commands()
	if index < 0 || index >= len(commands) {
		return transactionrecord.Command{}, outOfRange(transactionrecord.CommandsGroup, index, len(commands))
	}
	return commands[index], nil
}

// Attachment - indexed attachment hash
func (v *View) Attachment(index int) (merkle.Digest, error) {
	attachments := v.source.Attachments()
	if index < 0 || index >= len(attachments) {
		return merkle.Digest{}, outOfRange(transactionrecord.AttachmentsGroup, index, len(attachments))
	}
	return attachments[index], nil
}

// InputsOfKind - inputs whose state is of the kind, in order
func (v *View) InputsOfKind(kind transactionrecord.StateKind) []transactionrecord.StateAndRef {
	return v.FindInputs(kind, nil)
}

// OutputsOfKind - outputs whose state is of the kind, in order
func (v *View) OutputsOfKind(kind transactionrecord.StateKind) []transactionrecord.TransactionState {
	return v.FindOutputs(kind, nil)
}

// CommandsOfKind - commands of the kind, in order
func (v *View) CommandsOfKind(kind transactionrecord.CommandKind) []transactionrecord.Command {
	return v.FindCommands(kind, nil)
}

// FindInputs - inputs of the kind that satisfy the predicate, a nil
// predicate matches everything
func (v *View) FindInputs(kind transactionrecord.StateKind, predicate StatePredicate) []transactionrecord.StateAndRef {
	result := make([]transactionrecord.StateAndRef, 0)
	for _, input := range v.source.Inputs() {
		if input.State.Data.Kind() == kind && (nil == predicate || predicate(input.State.Data)) {
			result = append(result, input)
		}
	}
	return result
}

// FindOutputs - outputs of the kind that satisfy the predicate, a nil
// predicate matches everything
func (v *View) FindOutputs(kind transactionrecord.StateKind, predicate StatePredicate) []transactionrecord.TransactionState {
	result := make([]transactionrecord.TransactionState, 0)
	for _, output := range v.source.Outputs() {
		if output.Data.Kind() == kind && (nil == predicate || predicate(output.Data)) {
			result = append(result, output)
		}
	}
	return result
}

// FindCommands - commands of the kind that satisfy the predicate, a
// nil predicate matches everything
func (v *View) FindCommands(kind transactionrecord.CommandKind, predicate CommandPredicate) []transactionrecord.Command {
	result := make([]transactionrecord.Command, 0)
	for _, command := range v.source.Commands() {
		if command.Data.Kind() == kind && (nil == predicate || predicate(command)) {
			result = append(result, command)
		}
	}
	return result
}

func ambiguous(kind string, count int) error {
	return &fault.AmbiguousMatchCountError{
		Kind:  kind,
		Count: count,
	}
}

// FindInput - the single matching input
func (v *View) FindInput(kind transactionrecord.StateKind, predicate StatePredicate) (transactionrecord.StateAndRef, error) {
	found := v.FindInputs(kind, predicate)
	if 1 != len(found) {
		return transactionrecord.StateAndRef{}, ambiguous(kind.String(), len(found))
	}
	return found[0], nil
}

// FindOutput - the single matching output
func (v *View) FindOutput(kind transactionrecord.StateKind, predicate StatePredicate) (transactionrecord.TransactionState, error) {
	found := v.FindOutputs(kind, predicate)
	if 1 != len(found) {
		return transactionrecord.TransactionState{}, ambiguous(kind.String(), len(found))
	}
	return found[0], nil
}

// FindCommand - the single matching command
func (v *View) FindCommand(kind transactionrecord.CommandKind, predicate CommandPredicate) (transactionrecord.Command, error) {
	found := v.FindCommands(kind, predicate)
	if 1 != len(found) {
		return transactionrecord.Command{}, ambiguous(kind.String(), len(found))
	}
	return found[0], nil
}
