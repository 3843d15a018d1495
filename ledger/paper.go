// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// CommercialPaper - an issuer's promise to pay face value at maturity
//
// exactly one paper command per transaction:
//   issue   no input, one output, issuer signs, matures after the time window
//   move    one input, one output differing only in owner, owner signs
//   redeem  one input, no output, at or after maturity, owner signs and
//           is paid the face value in cash
type CommercialPaper struct{}

var (
	errPaperCommandCount = errors.New("expected exactly one paper command")
	errPaperShape        = errors.New("wrong number of paper inputs or outputs")
	errPaperUnsigned     = errors.New("paper command is not signed by the required party")
	errPaperFaceValue    = errors.New("face value must be positive")
	errPaperTimeWindow   = errors.New("time window is required")
	errPaperMaturity     = errors.New("maturity is not satisfied")
	errPaperChanged      = errors.New("only the owner may change on a move")
	errPaperUnpaid       = errors.New("owner is not paid the face value")
	errPaperNoStates     = errors.New("paper command without paper states")
)

func paperKey(s transactionrecord.ContractState) string {
	p := s.(*transactionrecord.CommercialPaperState)
	issuer := ""
	if nil != p.Issuer && nil != p.Issuer.Key {
		issuer = p.Issuer.Key.MapKey()
	}
	return fmt.Sprintf("%x/%x", issuer, p.IssuerRef)
}

// Verify - check paper groups against the single paper command
func (c *CommercialPaper) Verify(tx *LedgerTransaction) error {
	commands := tx.CommandsOfKind(
		transactionrecord.PaperIssueKind,
		transactionrecord.PaperMoveKind,
		transactionrecord.PaperRedeemKind,
	)
	if 1 != len(commands) {
		return errPaperCommandCount
	}
	command := commands[0]

	groups := tx.GroupStates(transactionrecord.CommercialPaperStateKind, paperKey)
	if 0 == len(groups) {
		return errPaperNoStates
	}

	for _, g := range groups {
		switch command.Data.Kind() {

		case transactionrecord.PaperIssueKind:
			if 0 != len(g.Inputs) || 1 != len(g.Outputs) {
				return errPaperShape
			}
			output := g.Outputs[0].(*transactionrecord.CommercialPaperState)
			if nil == output.Issuer || !SignedBy(commands, output.Issuer.Key) {
				return errPaperUnsigned
			}
			if 0 == output.FaceValue {
				return errPaperFaceValue
			}
			if nil == tx.TimeWindow || tx.TimeWindow.Until.IsZero() {
				return errPaperTimeWindow
			}
			if !output.Maturity.After(tx.TimeWindow.Until) {
				return errPaperMaturity
			}

		case transactionrecord.PaperMoveKind:
			if 1 != len(g.Inputs) || 1 != len(g.Outputs) {
				return errPaperShape
			}
			input := g.Inputs[0].(*transactionrecord.CommercialPaperState)
			output := g.Outputs[0].(*transactionrecord.CommercialPaperState)
			if !SignedBy(commands, input.Owner) {
				return errPaperUnsigned
			}
			if !sameTerms(input, output) {
				return errPaperChanged
			}

		case transactionrecord.PaperRedeemKind:
			if 1 != len(g.Inputs) || 0 != len(g.Outputs) {
				return errPaperShape
			}
			input := g.Inputs[0].(*transactionrecord.CommercialPaperState)
			if !SignedBy(commands, input.Owner) {
				return errPaperUnsigned
			}
			if nil == tx.TimeWindow || tx.TimeWindow.From.IsZero() {
				return errPaperTimeWindow
			}
			if tx.TimeWindow.From.Before(input.Maturity) {
				return errPaperMaturity
			}
			if paidTo(tx, input.Owner, input.Currency) < input.FaceValue {
				return errPaperUnpaid
			}
		}
	}
	return nil
}

func sameTerms(a *transactionrecord.CommercialPaperState, b *transactionrecord.CommercialPaperState) bool {
	return identity.Equal(a.Issuer, b.Issuer) &&
		bytes.Equal(a.IssuerRef, b.IssuerRef) &&
		a.FaceValue == b.FaceValue &&
		a.Currency == b.Currency &&
		a.Maturity.Equal(b.Maturity)
}

// total cash of a currency in outputs owned by the key
func paidTo(tx *LedgerTransaction, owner *account.Account, currency string) uint64 {
	total := uint64(0)
	for _, output := range tx.Outputs {
		cash, ok := output.Data.(*transactionrecord.CashState)
		if ok && cash.Currency == currency && account.Equal(cash.Owner, owner) {
			total += cash.Amount
		}
	}
	return total
}
