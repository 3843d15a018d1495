// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"errors"

	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Linear - each linear id has at most one input and one output and
// every member of either must sign an update command
type Linear struct{}

var (
	errLinearNoCommand = errors.New("linear states without an update command")
	errLinearShape     = errors.New("more than one input or output for a linear id")
	errLinearUnsigned  = errors.New("linear member has not signed")
	errLinearNoMembers = errors.New("linear state without members")
)

func linearKey(s transactionrecord.ContractState) string {
	return s.(*transactionrecord.LinearState).LinearId
}

// Verify - check every linear id group
func (c *Linear) Verify(tx *LedgerTransaction) error {
	updates := tx.CommandsOfKind(transactionrecord.LinearUpdateKind)
	groups := tx.GroupStates(transactionrecord.LinearStateKind, linearKey)
	if 0 == len(groups) {
		return nil
	}
	if 0 == len(updates) {
		return errLinearNoCommand
	}

	for _, g := range groups {
		if len(g.Inputs) > 1 || len(g.Outputs) > 1 {
			return errLinearShape
		}
		states := append(append([]transactionrecord.ContractState{}, g.Inputs...), g.Outputs...)
		for _, s := range states {
			members := s.Participants()
			if 0 == len(members) {
				return errLinearNoMembers
			}
			for _, member := range members {
				if !SignedBy(updates, member) {
					return errLinearUnsigned
				}
			}
		}
	}
	return nil
}
