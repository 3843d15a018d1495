// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/fixtures"
	"github.com/bitmark-inc/ledgertx/ledger"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/mocks"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

// ledger transaction bound to the fixture notary
func newLedgerTransaction(inputs ...transactionrecord.StateAndRef) *ledger.LedgerTransaction {
	return &ledger.LedgerTransaction{
		Id:     merkle.NewDigest([]byte("ledger transaction")),
		Notary: fixtures.Notary,
		Inputs: inputs,
	}
}

func state(data transactionrecord.ContractState) transactionrecord.TransactionState {
	return transactionrecord.TransactionState{
		Data:   data,
		Notary: fixtures.Notary,
	}
}

func input(n byte, data transactionrecord.ContractState) transactionrecord.StateAndRef {
	return transactionrecord.StateAndRef{
		State: state(data),
		Ref: transactionrecord.StateRef{
			TxId:  fixtures.TxId(n),
			Index: 0,
		},
	}
}

func addOutputs(tx *ledger.LedgerTransaction, outputs ...transactionrecord.ContractState) {
	for _, o := range outputs {
		tx.Outputs = append(tx.Outputs, state(o))
	}
}

func addCommand(tx *ledger.LedgerTransaction, data transactionrecord.CommandData, signers ...*account.Account) {
	tx.Commands = append(tx.Commands, transactionrecord.Command{
		Data:    data,
		Signers: signers,
	})
}

// verifier with the sample contracts and a resolver that must not be used
func sampleVerifier(ctl *gomock.Controller) *ledger.Verifier {
	return ledger.NewWithSampleContracts(logger.New(fixtures.LogCategory), mocks.NewMockResolver(ctl))
}

func assertAccepted(t *testing.T, v *ledger.Verifier, tx *ledger.LedgerTransaction, message string) {
	assert.Nil(t, v.VerifyLedgerTransaction(tx), message)
}

func assertRejected(t *testing.T, v *ledger.Verifier, tx *ledger.LedgerTransaction, contract string, message string) {
	err := v.VerifyLedgerTransaction(tx)
	assert.True(t, fault.IsErrVerification(err), "%s: wrong class: %v", message, err)
	if detail, ok := err.(*fault.ContractRejectionError); ok {
		assert.Equal(t, contract, detail.Contract, "%s: contract", message)
	}
}
