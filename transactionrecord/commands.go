// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/bitmark-inc/ledgertx/fault"
)

// CashIssue - create new cash, the nonce keeps otherwise identical
// issues distinct
type CashIssue struct {
	Nonce uint64 `json:"nonce,string"`
}

// CashMove - change ownership of cash
type CashMove struct{}

// CashExit - remove an amount of cash from the ledger
type CashExit struct {
	Amount   uint64 `json:"amount,string"`
	Currency string `json:"currency"`
}

// PaperIssue - issue commercial paper
type PaperIssue struct{}

// PaperMove - change the owner of commercial paper
type PaperMove struct{}

// PaperRedeem - redeem commercial paper at maturity
type PaperRedeem struct{}

// LinearUpdate - evolve a linear state
type LinearUpdate struct{}

// Kind - command kind code
func (c *CashIssue) Kind() CommandKind { return CashIssueKind }

// Kind - command kind code
func (c *CashMove) Kind() CommandKind { return CashMoveKind }

// Kind - command kind code
func (c *CashExit) Kind() CommandKind { return CashExitKind }

// Kind - command kind code
func (c *PaperIssue) Kind() CommandKind { return PaperIssueKind }

// Kind - command kind code
func (c *PaperMove) Kind() CommandKind { return PaperMoveKind }

// Kind - command kind code
func (c *PaperRedeem) Kind() CommandKind { return PaperRedeemKind }

// Kind - command kind code
func (c *LinearUpdate) Kind() CommandKind { return LinearUpdateKind }

func (c *CashIssue) pack() Packed {
	return AppendUint64(AppendUint64(nil, uint64(CashIssueKind)), c.Nonce)
}

func (c *CashMove) pack() Packed { return AppendUint64(nil, uint64(CashMoveKind)) }

func (c *CashExit) pack() Packed {
	message := AppendUint64(nil, uint64(CashExitKind))
	message = AppendUint64(message, c.Amount)
	return AppendString(message, c.Currency)
}

func (c *PaperIssue) pack() Packed   { return AppendUint64(nil, uint64(PaperIssueKind)) }
func (c *PaperMove) pack() Packed    { return AppendUint64(nil, uint64(PaperMoveKind)) }
func (c *PaperRedeem) pack() Packed  { return AppendUint64(nil, uint64(PaperRedeemKind)) }
func (c *LinearUpdate) pack() Packed { return AppendUint64(nil, uint64(LinearUpdateKind)) }

// PackCommandData - deterministic encoding of a command payload
func PackCommandData(data CommandData) Packed {
	return data.pack()
}

// UnpackCommandData - decode a record produced by PackCommandData
func UnpackCommandData(record Packed) (data CommandData, err error) {
	defer func() {
		if r := recover(); nil != r {
			data = nil
			err = fault.ErrNotTransactionPack
		}
	}()

	r := NewReader(record)
	kind := CommandKind(r.Uint64())
	if nil != r.Err() {
		return nil, r.Err()
	}

	switch kind {
	case CashIssueKind:
		data = &CashIssue{Nonce: r.Uint64()}
	case CashMoveKind:
		data = &CashMove{}
	case CashExitKind:
		data = &CashExit{
			Amount:   r.Uint64(),
			Currency: r.Text(),
		}
	case PaperIssueKind:
		data = &PaperIssue{}
	case PaperMoveKind:
		data = &PaperMove{}
	case PaperRedeemKind:
		data = &PaperRedeem{}
	case LinearUpdateKind:
		data = &LinearUpdate{}
	default:
		return nil, fault.ErrUnknownCommandKind
	}

	if err := r.Finish(); nil != err {
		return nil, err
	}
	return data, nil
}
