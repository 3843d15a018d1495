// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/fixtures"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// counts calls and accepts everything
type countingVerifier struct {
	calls int
}

func (v *countingVerifier) Verify(wtx *WireTransaction) error {
	v.calls += 1
	return nil
}

// builder whose only output has been rebound to another notary
func foreignOutput(t *testing.T) *Builder {
	b, err := NewBuilder(fixtures.Notary)
	assert.Nil(t, err, "new builder")
	assert.Nil(t, b.AddOutputState(fixtures.Linear("linear-1", 1, fixtures.Alice.Key)), "output")
	assert.Nil(t, b.AddCommand(&transactionrecord.LinearUpdate{}, fixtures.Alice.Key), "command")
	b.outputs[0].Notary = fixtures.OtherNotary
	return b
}

func TestMergeRejectsForeignOutputNotary(t *testing.T) {
	local, err := NewBuilder(fixtures.Notary)
	assert.Nil(t, err, "new builder")

	err = local.Merge(foreignOutput(t))
	assert.True(t, errors.Is(err, fault.ErrNotaryMismatch), "wrong error: %v", err)
	assert.Equal(t, 0, len(local.outputs), "outputs adopted")
	assert.Equal(t, 0, len(local.commands), "commands adopted")
}

func TestAssembleRejectsForeignOutputNotary(t *testing.T) {
	b := foreignOutput(t)
	verifier := &countingVerifier{}

	stx, err := b.Assemble(fixtures.Keystore(), fixtures.Alice.Key, verifier)
	assert.Nil(t, stx, "transaction returned")
	assert.True(t, errors.Is(err, fault.ErrNotaryMismatch), "wrong error: %v", err)
	assert.False(t, b.Consumed(), "consumed")
	assert.Equal(t, 0, verifier.calls, "verifier called")
}

func TestUnpackWireRejectsForeignOutputNotary(t *testing.T) {
	b := foreignOutput(t)
	wtx := newWireTransaction(b.notary, nil, nil, b.outputs, b.commands, nil)

	received, err := UnpackWireTransaction(wtx.Pack())
	assert.Nil(t, received, "transaction returned")
	assert.True(t, errors.Is(err, fault.ErrNotaryMismatch), "wrong error: %v", err)
}
