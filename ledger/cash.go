// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"
	"fmt"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Cash - fungible claims on an issuer
//
// states are grouped by issuer, issuer reference and currency:
//   issue  a group with no inputs, issuer signs
//   move   inputs equal outputs, every input owner signs
//   exit   inputs equal outputs plus the exit amount, issuer and owners sign
type Cash struct{}

var (
	errCashNoCommand    = errors.New("cash states without a cash command")
	errCashNoStates     = errors.New("cash command without cash states")
	errCashZeroAmount   = errors.New("zero amount cash output")
	errCashOverflow     = errors.New("cash amount overflow")
	errCashIssueUnsigned = errors.New("issue is not signed by the issuer")
	errCashNotConserved = errors.New("cash amounts are not conserved")
	errCashOwnerUnsigned = errors.New("input owner has not signed")
	errCashExitUnsigned = errors.New("exit is not signed by the issuer")
)

func cashKey(s transactionrecord.ContractState) string {
	c := s.(*transactionrecord.CashState)
	issuer := ""
	if nil != c.Issuer && nil != c.Issuer.Key {
		issuer = c.Issuer.Key.MapKey()
	}
	return fmt.Sprintf("%x/%x/%s", issuer, c.IssuerRef, c.Currency)
}

func sum(states []transactionrecord.ContractState) (uint64, error) {
	total := uint64(0)
	for _, s := range states {
		amount := s.(*transactionrecord.CashState).Amount
		if total+amount < total {
			return 0, errCashOverflow
		}
		total += amount
	}
	return total, nil
}

// Verify - check every cash group
func (c *Cash) Verify(tx *LedgerTransaction) error {
	issues := tx.CommandsOfKind(transactionrecord.CashIssueKind)
	moves := tx.CommandsOfKind(transactionrecord.CashMoveKind)
	exits := tx.CommandsOfKind(transactionrecord.CashExitKind)

	groups := tx.GroupStates(transactionrecord.CashStateKind, cashKey)
	commandCount := len(issues) + len(moves) + len(exits)
	if 0 == len(groups) {
		if 0 != commandCount {
			return errCashNoStates
		}
		return nil
	}
	if 0 == commandCount {
		return errCashNoCommand
	}

	for _, g := range groups {
		for _, s := range g.Outputs {
			if 0 == s.(*transactionrecord.CashState).Amount {
				return errCashZeroAmount
			}
		}

		var sample *transactionrecord.CashState
		if 0 != len(g.Inputs) {
			sample = g.Inputs[0].(*transactionrecord.CashState)
		} else {
			sample = g.Outputs[0].(*transactionrecord.CashState)
		}
		var issuerKey *account.Account
		if nil != sample.Issuer {
			issuerKey = sample.Issuer.Key
		}

		inputTotal, err := sum(g.Inputs)
		if nil != err {
			return err
		}
		outputTotal, err := sum(g.Outputs)
		if nil != err {
			return err
		}

		if 0 == len(g.Inputs) {
			if !SignedBy(issues, issuerKey) {
				return errCashIssueUnsigned
			}
			continue
		}

		exitTotal := uint64(0)
		groupExits := make([]transactionrecord.Command, 0)
		for _, e := range exits {
			exit := e.Data.(*transactionrecord.CashExit)
			if exit.Currency == sample.Currency {
				exitTotal += exit.Amount
				groupExits = append(groupExits, e)
			}
		}
		if 0 != exitTotal && !SignedBy(groupExits, issuerKey) {
			return errCashExitUnsigned
		}

		if inputTotal != outputTotal+exitTotal || outputTotal+exitTotal < outputTotal {
			return fmt.Errorf("%w: group: %s  inputs: %d  outputs: %d  exit: %d",
				errCashNotConserved, sample.Currency, inputTotal, outputTotal, exitTotal)
		}

		ownerCommands := append(append([]transactionrecord.Command{}, moves...), groupExits...)
		for _, s := range g.Inputs {
			if !SignedBy(ownerCommands, s.(*transactionrecord.CashState).Owner) {
				return errCashOwnerUnsigned
			}
		}
	}
	return nil
}
