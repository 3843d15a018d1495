// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/bitmark-inc/ledgertx/fixtures"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

func TestCashIssue(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	v := sampleVerifier(ctl)

	tx := newLedgerTransaction()
	addOutputs(tx, fixtures.Cash(100, "USD", fixtures.Alice.Key))
	addCommand(tx, &transactionrecord.CashIssue{Nonce: 1}, fixtures.Issuer.Key)
	assertAccepted(t, v, tx, "issue")

	tx = newLedgerTransaction()
	addOutputs(tx, fixtures.Cash(100, "USD", fixtures.Alice.Key))
	addCommand(tx, &transactionrecord.CashIssue{Nonce: 1}, fixtures.Alice.Key)
	assertRejected(t, v, tx, "cash", "issue not signed by issuer")

	tx = newLedgerTransaction()
	addOutputs(tx, fixtures.Cash(0, "USD", fixtures.Alice.Key))
	addCommand(tx, &transactionrecord.CashIssue{Nonce: 1}, fixtures.Issuer.Key)
	assertRejected(t, v, tx, "cash", "zero amount")

	tx = newLedgerTransaction()
	addOutputs(tx, fixtures.Cash(100, "USD", fixtures.Alice.Key))
	assertRejected(t, v, tx, "cash", "no command")
}

func TestCashMove(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	v := sampleVerifier(ctl)

	inputs := []transactionrecord.StateAndRef{
		input(1, fixtures.Cash(60, "USD", fixtures.Alice.Key)),
		input(2, fixtures.Cash(40, "USD", fixtures.Bob.Key)),
	}

	tx := newLedgerTransaction(inputs...)
	addOutputs(tx,
		fixtures.Cash(70, "USD", fixtures.Charlie.Key),
		fixtures.Cash(30, "USD", fixtures.Alice.Key),
	)
	addCommand(tx, &transactionrecord.CashMove{}, fixtures.Alice.Key, fixtures.Bob.Key)
	assertAccepted(t, v, tx, "move")

	tx = newLedgerTransaction(inputs...)
	addOutputs(tx, fixtures.Cash(101, "USD", fixtures.Charlie.Key))
	addCommand(tx, &transactionrecord.CashMove{}, fixtures.Alice.Key, fixtures.Bob.Key)
	assertRejected(t, v, tx, "cash", "amount created")

	tx = newLedgerTransaction(inputs...)
	addOutputs(tx, fixtures.Cash(100, "EUR", fixtures.Charlie.Key))
	addCommand(tx, &transactionrecord.CashMove{}, fixtures.Alice.Key, fixtures.Bob.Key)
	assertRejected(t, v, tx, "cash", "currency changed")

	tx = newLedgerTransaction(inputs...)
	addOutputs(tx, fixtures.Cash(100, "USD", fixtures.Charlie.Key))
	addCommand(tx, &transactionrecord.CashMove{}, fixtures.Alice.Key)
	assertRejected(t, v, tx, "cash", "bob did not sign")
}

func TestCashExit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	v := sampleVerifier(ctl)

	in := input(1, fixtures.Cash(100, "USD", fixtures.Alice.Key))

	tx := newLedgerTransaction(in)
	addOutputs(tx, fixtures.Cash(75, "USD", fixtures.Alice.Key))
	addCommand(tx, &transactionrecord.CashExit{Amount: 25, Currency: "USD"}, fixtures.Alice.Key, fixtures.Issuer.Key)
	assertAccepted(t, v, tx, "partial exit")

	tx = newLedgerTransaction(in)
	addCommand(tx, &transactionrecord.CashExit{Amount: 100, Currency: "USD"}, fixtures.Alice.Key, fixtures.Issuer.Key)
	assertAccepted(t, v, tx, "full exit")

	tx = newLedgerTransaction(in)
	addCommand(tx, &transactionrecord.CashExit{Amount: 100, Currency: "USD"}, fixtures.Alice.Key)
	assertRejected(t, v, tx, "cash", "exit without issuer")

	tx = newLedgerTransaction(in)
	addOutputs(tx, fixtures.Cash(80, "USD", fixtures.Alice.Key))
	addCommand(tx, &transactionrecord.CashExit{Amount: 25, Currency: "USD"}, fixtures.Alice.Key, fixtures.Issuer.Key)
	assertRejected(t, v, tx, "cash", "exit does not balance")
}

// paper owned by the issuer (0), alice (1) or bob (2)
func newPaper(ownerKey int) *transactionrecord.CommercialPaperState {
	p := &transactionrecord.CommercialPaperState{
		Issuer:    fixtures.Issuer,
		IssuerRef: []byte{7},
		Owner:     fixtures.Issuer.Key,
		FaceValue: 1000,
		Currency:  "USD",
		Maturity:  fixtures.Epoch.Add(30 * 24 * time.Hour),
	}
	switch ownerKey {
	case 1:
		p.Owner = fixtures.Alice.Key
	case 2:
		p.Owner = fixtures.Bob.Key
	}
	return p
}

func TestCommercialPaperIssue(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	v := sampleVerifier(ctl)

	before := &transactionrecord.TimeWindow{Until: fixtures.Epoch}
	after := &transactionrecord.TimeWindow{Until: fixtures.Epoch.Add(60 * 24 * time.Hour)}

	tx := newLedgerTransaction()
	tx.TimeWindow = before
	addOutputs(tx, newPaper(0))
	addCommand(tx, &transactionrecord.PaperIssue{}, fixtures.Issuer.Key)
	assertAccepted(t, v, tx, "issue")

	tx = newLedgerTransaction()
	addOutputs(tx, newPaper(0))
	addCommand(tx, &transactionrecord.PaperIssue{}, fixtures.Issuer.Key)
	assertRejected(t, v, tx, "commercial-paper", "no time window")

	tx = newLedgerTransaction()
	tx.TimeWindow = after
	addOutputs(tx, newPaper(0))
	addCommand(tx, &transactionrecord.PaperIssue{}, fixtures.Issuer.Key)
	assertRejected(t, v, tx, "commercial-paper", "issued after maturity")

	tx = newLedgerTransaction()
	tx.TimeWindow = before
	addOutputs(tx, newPaper(0))
	addCommand(tx, &transactionrecord.PaperIssue{}, fixtures.Alice.Key)
	assertRejected(t, v, tx, "commercial-paper", "not signed by issuer")

	tx = newLedgerTransaction()
	tx.TimeWindow = before
	addOutputs(tx, newPaper(0))
	addCommand(tx, &transactionrecord.PaperIssue{}, fixtures.Issuer.Key)
	addCommand(tx, &transactionrecord.PaperMove{}, fixtures.Issuer.Key)
	assertRejected(t, v, tx, "commercial-paper", "two commands")
}

func TestCommercialPaperMove(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	v := sampleVerifier(ctl)

	tx := newLedgerTransaction(input(1, newPaper(1)))
	addOutputs(tx, newPaper(2))
	addCommand(tx, &transactionrecord.PaperMove{}, fixtures.Alice.Key)
	assertAccepted(t, v, tx, "move")

	tx = newLedgerTransaction(input(1, newPaper(1)))
	addOutputs(tx, newPaper(2))
	addCommand(tx, &transactionrecord.PaperMove{}, fixtures.Bob.Key)
	assertRejected(t, v, tx, "commercial-paper", "new owner signed")

	changed := newPaper(2)
	changed.FaceValue = 2000
	tx = newLedgerTransaction(input(1, newPaper(1)))
	addOutputs(tx, changed)
	addCommand(tx, &transactionrecord.PaperMove{}, fixtures.Alice.Key)
	assertRejected(t, v, tx, "commercial-paper", "face value changed")
}

func TestCommercialPaperRedeem(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	v := sampleVerifier(ctl)

	matured := &transactionrecord.TimeWindow{From: fixtures.Epoch.Add(31 * 24 * time.Hour)}
	early := &transactionrecord.TimeWindow{From: fixtures.Epoch}

	redeem := func(w *transactionrecord.TimeWindow, payment uint64) {
		tx := newLedgerTransaction(
			input(1, newPaper(1)),
			input(2, fixtures.Cash(payment, "USD", fixtures.Issuer.Key)),
		)
		tx.TimeWindow = w
		addOutputs(tx, fixtures.Cash(payment, "USD", fixtures.Alice.Key))
		addCommand(tx, &transactionrecord.PaperRedeem{}, fixtures.Alice.Key)
		addCommand(tx, &transactionrecord.CashMove{}, fixtures.Issuer.Key)

		if nil == w || w == early {
			assertRejected(t, v, tx, "commercial-paper", "early redeem")
		} else if payment < 1000 {
			assertRejected(t, v, tx, "commercial-paper", "under paid")
		} else {
			assertAccepted(t, v, tx, "redeem")
		}
	}
	redeem(matured, 1000)
	redeem(matured, 999)
	redeem(early, 1000)
	redeem(nil, 1000)
}

func TestLinear(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	v := sampleVerifier(ctl)

	in := input(1, fixtures.Linear("deal", 1, fixtures.Alice.Key, fixtures.Bob.Key))

	tx := newLedgerTransaction(in)
	addOutputs(tx, fixtures.Linear("deal", 2, fixtures.Alice.Key, fixtures.Bob.Key))
	addCommand(tx, &transactionrecord.LinearUpdate{}, fixtures.Alice.Key, fixtures.Bob.Key)
	assertAccepted(t, v, tx, "update")

	tx = newLedgerTransaction(in)
	addOutputs(tx, fixtures.Linear("deal", 2, fixtures.Alice.Key, fixtures.Bob.Key, fixtures.Charlie.Key))
	addCommand(tx, &transactionrecord.LinearUpdate{}, fixtures.Alice.Key, fixtures.Bob.Key)
	assertRejected(t, v, tx, "linear", "new member did not sign")

	tx = newLedgerTransaction(in)
	addOutputs(tx,
		fixtures.Linear("deal", 2, fixtures.Alice.Key),
		fixtures.Linear("deal", 3, fixtures.Alice.Key),
	)
	addCommand(tx, &transactionrecord.LinearUpdate{}, fixtures.Alice.Key, fixtures.Bob.Key)
	assertRejected(t, v, tx, "linear", "split")

	tx = newLedgerTransaction(in)
	addOutputs(tx, fixtures.Linear("deal", 2, fixtures.Alice.Key, fixtures.Bob.Key))
	assertRejected(t, v, tx, "linear", "no command")
}
