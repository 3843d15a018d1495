// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
)

// StateRef - an output of an earlier transaction
type StateRef struct {
	TxId  merkle.Digest `json:"txId"`
	Index uint64        `json:"index"`
}

// TransactionState - a contract state bound to its notary
type TransactionState struct {
	Data   ContractState   `json:"data"`
	Notary *identity.Party `json:"notary"`
}

// StateAndRef - a resolved input: the state and where it was created
type StateAndRef struct {
	State TransactionState `json:"state"`
	Ref   StateRef         `json:"ref"`
}

// Command - a payload and the keys that must sign for it
type Command struct {
	Data    CommandData        `json:"data"`
	Signers []*account.Account `json:"signers"`
}

// TimeWindow - validity interval, a zero time is an open bound
type TimeWindow struct {
	From  time.Time `json:"from"`
	Until time.Time `json:"until"`
}

// String - txid:index
func (ref StateRef) String() string {
	return fmt.Sprintf("%s:%d", ref.TxId, ref.Index)
}

// Pack - deterministic encoding
func (ref StateRef) Pack() Packed {
	message := AppendDigest(nil, ref.TxId)
	return AppendUint64(message, ref.Index)
}

// UnpackStateRef - decode a record produced by StateRef.Pack
func UnpackStateRef(record Packed) (StateRef, error) {
	r := NewReader(record)
	ref := StateRef{
		TxId:  r.Digest(),
		Index: r.Uint64(),
	}
	if err := r.Finish(); nil != err {
		return StateRef{}, err
	}
	return ref, nil
}

// Pack - deterministic encoding
func (s TransactionState) Pack() Packed {
	message := AppendBytes(nil, PackState(s.Data))
	return AppendParty(message, s.Notary)
}

// UnpackTransactionState - decode a record produced by TransactionState.Pack
func UnpackTransactionState(record Packed) (TransactionState, error) {
	r := NewReader(record)
	data := r.Packed()
	notary := r.Party()
	if err := r.Finish(); nil != err {
		return TransactionState{}, err
	}
	state, err := UnpackState(data)
	if nil != err {
		return TransactionState{}, err
	}
	return TransactionState{
		Data:   state,
		Notary: notary,
	}, nil
}

// Pack - deterministic encoding
func (s StateAndRef) Pack() Packed {
	message := AppendBytes(nil, s.Ref.Pack())
	return AppendBytes(message, s.State.Pack())
}

// UnpackStateAndRef - decode a record produced by StateAndRef.Pack
func UnpackStateAndRef(record Packed) (StateAndRef, error) {
	r := NewReader(record)
	refData := r.Packed()
	stateData := r.Packed()
	if err := r.Finish(); nil != err {
		return StateAndRef{}, err
	}
	ref, err := UnpackStateRef(refData)
	if nil != err {
		return StateAndRef{}, err
	}
	state, err := UnpackTransactionState(stateData)
	if nil != err {
		return StateAndRef{}, err
	}
	return StateAndRef{
		State: state,
		Ref:   ref,
	}, nil
}

// Pack - deterministic encoding
func (c Command) Pack() Packed {
	message := AppendBytes(nil, PackCommandData(c.Data))
	return AppendAccounts(message, c.Signers)
}

// UnpackCommand - decode a record produced by Command.Pack
func UnpackCommand(record Packed) (Command, error) {
	r := NewReader(record)
	data := r.Packed()
	signers := r.Accounts()
	if err := r.Finish(); nil != err {
		return Command{}, err
	}
	d, err := UnpackCommandData(data)
	if nil != err {
		return Command{}, err
	}
	return Command{
		Data:    d,
		Signers: signers,
	}, nil
}

// NewTimeWindow - validated window, either bound may be zero but not both
func NewTimeWindow(from time.Time, until time.Time) (*TimeWindow, error) {
	w := &TimeWindow{
		From:  from,
		Until: until,
	}
	if err := w.Validate(); nil != err {
		return nil, err
	}
	return w, nil
}

// Validate - at least one bound, and from strictly before until
func (w *TimeWindow) Validate() error {
	if w.From.IsZero() && w.Until.IsZero() {
		return fault.ErrInvalidTimeWindow
	}
	if !w.From.IsZero() && !w.Until.IsZero() && !w.From.Before(w.Until) {
		return fault.ErrInvalidTimeWindow
	}
	return nil
}

// Contains - true if the instant lies in [From, Until)
func (w *TimeWindow) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.Until.IsZero() && !t.Before(w.Until) {
		return false
	}
	return true
}

// Equal - same bounds, nil windows are equal to each other
func (w *TimeWindow) Equal(other *TimeWindow) bool {
	if nil == w || nil == other {
		return nil == w && nil == other
	}
	return w.From.Equal(other.From) && w.Until.Equal(other.Until)
}

// String - for log messages
func (w *TimeWindow) String() string {
	if nil == w {
		return "<none>"
	}
	bound := func(t time.Time) string {
		if t.IsZero() {
			return "open"
		}
		return t.UTC().Format(time.RFC3339Nano)
	}
	return "[" + bound(w.From) + ", " + bound(w.Until) + ")"
}

// bits of the time window presence flags
const (
	hasFrom  = 0x01
	hasUntil = 0x02
)

// Pack - presence flags followed by each present bound
func (w *TimeWindow) Pack() Packed {
	flags := uint64(0)
	if !w.From.IsZero() {
		flags |= hasFrom
	}
	if !w.Until.IsZero() {
		flags |= hasUntil
	}
	message := AppendUint64(nil, flags)
	if 0 != flags&hasFrom {
		message = AppendTime(message, w.From)
	}
	if 0 != flags&hasUntil {
		message = AppendTime(message, w.Until)
	}
	return message
}

// UnpackTimeWindow - decode a record produced by TimeWindow.Pack
func UnpackTimeWindow(record Packed) (*TimeWindow, error) {
	r := NewReader(record)
	flags := r.Uint64()
	w := &TimeWindow{}
	if 0 != flags&hasFrom {
		w.From = r.Time()
	}
	if 0 != flags&hasUntil {
		w.Until = r.Time()
	}
	if err := r.Finish(); nil != err {
		return nil, err
	}
	if 0 != flags&^(hasFrom|hasUntil) {
		return nil, fault.ErrNotTransactionPack
	}
	if err := w.Validate(); nil != err {
		return nil, err
	}
	return w, nil
}
