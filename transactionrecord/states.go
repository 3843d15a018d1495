// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"time"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
)

// CashState - a claim on an issuer for an amount of a currency
type CashState struct {
	Amount    uint64           `json:"amount,string"` // smallest currency unit
	Currency  string           `json:"currency"`      // ISO code or token symbol
	Issuer    *identity.Party  `json:"issuer"`
	IssuerRef []byte           `json:"issuerRef"` // issuer's opaque reference
	Owner     *account.Account `json:"owner"`
}

// CommercialPaperState - issuer promises to pay face value to the owner at maturity
type CommercialPaperState struct {
	Issuer    *identity.Party  `json:"issuer"`
	IssuerRef []byte           `json:"issuerRef"`
	Owner     *account.Account `json:"owner"`
	FaceValue uint64           `json:"faceValue,string"`
	Currency  string           `json:"currency"`
	Maturity  time.Time        `json:"maturity"`
}

// LinearState - an agreement that evolves through transactions while
// keeping the same linear id
type LinearState struct {
	LinearId  string             `json:"linearId"`
	Text      string             `json:"text"`
	Number    int64              `json:"number"`
	Flag      bool               `json:"flag"`
	Timestamp time.Time          `json:"timestamp"`
	Members   []*account.Account `json:"members"`
}

// Kind - state kind code
func (s *CashState) Kind() StateKind { return CashStateKind }

// Kind - state kind code
func (s *CommercialPaperState) Kind() StateKind { return CommercialPaperStateKind }

// Kind - state kind code
func (s *LinearState) Kind() StateKind { return LinearStateKind }

// Participants - parties that must be able to see the state
func (s *CashState) Participants() []*account.Account {
	return []*account.Account{s.Owner}
}

// Participants - parties that must be able to see the state
func (s *CommercialPaperState) Participants() []*account.Account {
	return []*account.Account{s.Owner}
}

// Participants - parties that must be able to see the state
func (s *LinearState) Participants() []*account.Account {
	return append([]*account.Account{}, s.Members...)
}

func (s *CashState) pack() Packed {
	message := AppendUint64(nil, uint64(CashStateKind))
	message = AppendUint64(message, s.Amount)
	message = AppendString(message, s.Currency)
	message = AppendParty(message, s.Issuer)
	message = AppendBytes(message, s.IssuerRef)
	return AppendAccount(message, s.Owner)
}

func (s *CommercialPaperState) pack() Packed {
	message := AppendUint64(nil, uint64(CommercialPaperStateKind))
	message = AppendParty(message, s.Issuer)
	message = AppendBytes(message, s.IssuerRef)
	message = AppendAccount(message, s.Owner)
	message = AppendUint64(message, s.FaceValue)
	message = AppendString(message, s.Currency)
	return AppendTime(message, s.Maturity)
}

func (s *LinearState) pack() Packed {
	message := AppendUint64(nil, uint64(LinearStateKind))
	message = AppendString(message, s.LinearId)
	message = AppendString(message, s.Text)
	message = AppendInt64(message, s.Number)
	message = AppendBool(message, s.Flag)
	message = AppendTime(message, s.Timestamp)
	return AppendAccounts(message, s.Members)
}

// PackState - deterministic encoding of a contract state
func PackState(state ContractState) Packed {
	return state.pack()
}

// UnpackState - decode a record produced by PackState
func UnpackState(record Packed) (state ContractState, err error) {
	defer func() {
		if r := recover(); nil != r {
			state = nil
			err = fault.ErrNotTransactionPack
		}
	}()

	r := NewReader(record)
	kind := StateKind(r.Uint64())
	if nil != r.Err() {
		return nil, r.Err()
	}

	switch kind {
	case CashStateKind:
		state = &CashState{
			Amount:    r.Uint64(),
			Currency:  r.Text(),
			Issuer:    r.Party(),
			IssuerRef: r.Bytes(),
			Owner:     r.Account(),
		}

	case CommercialPaperStateKind:
		state = &CommercialPaperState{
			Issuer:    r.Party(),
			IssuerRef: r.Bytes(),
			Owner:     r.Account(),
			FaceValue: r.Uint64(),
			Currency:  r.Text(),
			Maturity:  r.Time(),
		}

	case LinearStateKind:
		state = &LinearState{
			LinearId:  r.Text(),
			Text:      r.Text(),
			Number:    r.Int64(),
			Flag:      r.Bool(),
			Timestamp: r.Time(),
			Members:   r.Accounts(),
		}

	default:
		return nil, fault.ErrUnknownStateKind
	}

	if err := r.Finish(); nil != err {
		return nil, err
	}
	return state, nil
}
