// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgertx/account"
)

// Packed - packed records are just a byte slice
type Packed []byte

// StateKind - type code for contract states
// this is encoded as Varint64 at start of a packed state
type StateKind uint64

// enumerate the possible state kinds
const (
	// null marks beginning of list - not used as a state kind
	NullState = StateKind(iota)

	CashStateKind            = StateKind(iota) // fungible cash claim on an issuer
	CommercialPaperStateKind = StateKind(iota) // promise to pay face value at maturity
	LinearStateKind          = StateKind(iota) // evolving agreement with a stable id

	// this item must be last
	invalidState = StateKind(iota)
)

// CommandKind - type code for commands
// this is encoded as Varint64 at start of a packed command
type CommandKind uint64

// enumerate the possible command kinds
const (
	// null marks beginning of list - not used as a command kind
	NullCommand = CommandKind(iota)

	CashIssueKind    = CommandKind(iota)
	CashMoveKind     = CommandKind(iota)
	CashExitKind     = CommandKind(iota)
	PaperIssueKind   = CommandKind(iota)
	PaperMoveKind    = CommandKind(iota)
	PaperRedeemKind  = CommandKind(iota)
	LinearUpdateKind = CommandKind(iota)

	// this item must be last
	invalidCommand = CommandKind(iota)
)

// Group - component group tags of a transaction
// the numeric order is the canonical order of merkle leaves
type Group uint64

// enumerate the groups
const (
	InputsGroup      = Group(iota + 1)
	OutputsGroup     = Group(iota + 1)
	CommandsGroup    = Group(iota + 1)
	AttachmentsGroup = Group(iota + 1)
	NotaryGroup      = Group(iota + 1)
	TimeWindowGroup  = Group(iota + 1)
	SignersGroup     = Group(iota + 1)
)

// ContractState - the payload of a transaction state
//
// the set of implementations is closed, only this package can pack them
type ContractState interface {
	Kind() StateKind
	Participants() []*account.Account
	pack() Packed
}

// CommandData - the payload of a command
//
// the set of implementations is closed, only this package can pack them
type CommandData interface {
	Kind() CommandKind
	pack() Packed
}

var stateNames = map[StateKind]string{
	CashStateKind:            "cash",
	CommercialPaperStateKind: "commercial-paper",
	LinearStateKind:          "linear",
}

// String - name of the state kind, also used as its contract name
func (k StateKind) String() string {
	if s, ok := stateNames[k]; ok {
		return s
	}
	return "unknown"
}

// Valid - true for a defined kind
func (k StateKind) Valid() bool {
	return k > NullState && k < invalidState
}

var commandNames = map[CommandKind]string{
	CashIssueKind:    "cash-issue",
	CashMoveKind:     "cash-move",
	CashExitKind:     "cash-exit",
	PaperIssueKind:   "paper-issue",
	PaperMoveKind:    "paper-move",
	PaperRedeemKind:  "paper-redeem",
	LinearUpdateKind: "linear-update",
}

// String - name of the command kind
func (k CommandKind) String() string {
	if s, ok := commandNames[k]; ok {
		return s
	}
	return "unknown"
}

// Valid - true for a defined kind
func (k CommandKind) Valid() bool {
	return k > NullCommand && k < invalidCommand
}

// Contract - the state kind whose contract interprets this command
func (k CommandKind) Contract() StateKind {
	switch k {
	case CashIssueKind, CashMoveKind, CashExitKind:
		return CashStateKind
	case PaperIssueKind, PaperMoveKind, PaperRedeemKind:
		return CommercialPaperStateKind
	case LinearUpdateKind:
		return LinearStateKind
	default:
		return NullState
	}
}

var groupNames = map[Group]string{
	InputsGroup:      "inputs",
	OutputsGroup:     "outputs",
	CommandsGroup:    "commands",
	AttachmentsGroup: "attachments",
	NotaryGroup:      "notary",
	TimeWindowGroup:  "time window",
	SignersGroup:     "signers",
}

// String - name of the group
func (g Group) String() string {
	if s, ok := groupNames[g]; ok {
		return s
	}
	return "unknown"
}

// Groups - every group in canonical order
func Groups() []Group {
	return []Group{
		InputsGroup,
		OutputsGroup,
		CommandsGroup,
		AttachmentsGroup,
		NotaryGroup,
		TimeWindowGroup,
		SignersGroup,
	}
}

// Valid - true for a defined group
func (g Group) Valid() bool {
	return g >= InputsGroup && g <= SignersGroup
}
