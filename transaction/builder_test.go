// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/fixtures"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transaction"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

func TestNewBuilderRequiresNotary(t *testing.T) {
	_, err := transaction.NewBuilder(nil)
	assert.Equal(t, fault.ErrMissingNotary, err, "nil notary")

	_, err = transaction.NewBuilder(identity.New("nobody", nil, true))
	assert.Equal(t, fault.ErrMissingNotary, err, "notary without key")
}

func TestAddInputStateNotaryMismatch(t *testing.T) {
	b, err := transaction.NewBuilder(fixtures.Notary)
	assert.Nil(t, err, "new builder")

	err = b.AddInputState(fixtures.Input(1, fixtures.OtherNotary, fixtures.Alice.Key))
	assert.True(t, fault.IsErrConstraint(err), "wrong class: %v", err)
	assert.True(t, errors.Is(err, fault.ErrNotaryMismatch), "wrong error: %v", err)

	var detail *fault.NotaryMismatchError
	assert.True(t, errors.As(err, &detail), "no detail")
	assert.Equal(t, fixtures.Notary.String(), detail.Expected, "expected")
	assert.Equal(t, fixtures.OtherNotary.String(), detail.Actual, "actual")

	assert.Equal(t, 0, len(b.Inputs()), "input was added")
}

func TestAddInputStateDuplicate(t *testing.T) {
	b := newBuilder(t)

	err := b.AddInputState(fixtures.Input(1, fixtures.Notary, fixtures.Alice.Key))
	assert.True(t, errors.Is(err, fault.ErrDuplicateInput), "wrong error: %v", err)
	assert.Equal(t, 1, len(b.Inputs()), "input count")
}

func TestAddCommandRejectsMissingSigner(t *testing.T) {
	b := newBuilder(t)

	err := b.AddCommand(&transactionrecord.CashMove{}, fixtures.Bob.Key, nil)
	assert.Equal(t, fault.ErrNotAPublicKey, err, "nil signer")

	err = b.AddCommand(nil, fixtures.Bob.Key)
	assert.Equal(t, fault.ErrUnknownCommandKind, err, "nil command")

	assert.Equal(t, 1, len(b.Commands()), "command count")
}

func TestSetTimeWindowOnce(t *testing.T) {
	b := newBuilder(t)

	err := b.SetTimeWindow(&transactionrecord.TimeWindow{
		From:  fixtures.Epoch.Add(time.Hour),
		Until: fixtures.Epoch,
	})
	assert.Equal(t, fault.ErrInvalidTimeWindow, err, "reversed window")
	assert.Nil(t, b.TimeWindow(), "window was set")

	w, err := transactionrecord.NewTimeWindow(fixtures.Epoch, fixtures.Epoch.Add(time.Hour))
	assert.Nil(t, err, "new time window")

	err = b.SetTimeWindow(w)
	assert.Nil(t, err, "first window")

	err = b.SetTimeWindow(w)
	assert.Equal(t, fault.ErrTimeWindowAlreadySet, err, "second window")
	assert.True(t, fault.IsErrConstraint(err), "wrong class")

	// the builder keeps its own copy
	w.Until = time.Time{}
	assert.Equal(t, fixtures.Epoch.Add(time.Hour), b.TimeWindow().Until, "window aliased")
}

func TestBuilderAccessorsReturnCopies(t *testing.T) {
	b := newBuilder(t)
	assert.Nil(t, b.AddAttachment(merkle.NewDigest([]byte("attachment"))), "add attachment")

	commands := b.Commands()
	commands[0].Signers[0] = fixtures.Bob.Key
	assert.Equal(t, fixtures.Alice.Key, b.Commands()[0].Signers[0], "signer list aliased")

	attachments := b.Attachments()
	attachments[0] = merkle.Digest{}
	assert.False(t, b.Attachments()[0].IsZero(), "attachment list aliased")

	assert.Equal(t, transactionrecord.Incomplete, b.Status(), "status")
	assert.Equal(t, fixtures.Notary, b.Notary(), "notary")
}

func TestBuilderPack(t *testing.T) {
	b := newBuilder(t)
	assert.Nil(t, b.AddAttachment(merkle.NewDigest([]byte("attachment"))), "add attachment")
	w, _ := transactionrecord.NewTimeWindow(time.Time{}, fixtures.Epoch)
	assert.Nil(t, b.SetTimeWindow(w), "set window")

	packed, err := b.Pack()
	assert.Nil(t, err, "pack")

	received, err := transaction.UnpackBuilder(packed)
	assert.Nil(t, err, "unpack")

	repacked, err := received.Pack()
	assert.Nil(t, err, "repack")
	assert.Equal(t, packed, repacked, "repacked differs")

	assert.True(t, w.Equal(received.TimeWindow()), "window")
	assert.True(t, identity.Equal(fixtures.Notary, received.Notary()), "notary")
	assert.Equal(t, b.Inputs()[0].Ref, received.Inputs()[0].Ref, "input ref")
}

func TestUnpackBuilderRejectsGarbage(t *testing.T) {
	b := newBuilder(t)
	packed, _ := b.Pack()

	_, err := transaction.UnpackBuilder(packed[:len(packed)-1])
	assert.NotNil(t, err, "truncated record accepted")

	_, err = transaction.UnpackBuilder(append(packed, 0))
	assert.NotNil(t, err, "trailing data accepted")

	wrongTag := append(transactionrecord.Packed{}, packed...)
	wrongTag[0] = 9
	_, err = transaction.UnpackBuilder(wrongTag)
	assert.Equal(t, fault.ErrNotTransactionPack, err, "wrong tag")
}
