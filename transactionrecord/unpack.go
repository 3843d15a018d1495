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
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/util"
)

// Reader - sequential decoder for packed records
//
// the first failure is sticky: later reads return zero values and
// Err reports the original error
type Reader struct {
	record Packed
	n      int
	err    error
}

// NewReader - start decoding at the beginning of a record
func NewReader(record Packed) *Reader {
	return &Reader{
		record: record,
	}
}

// Err - first error seen
func (r *Reader) Err() error {
	return r.err
}

// Finish - error unless the record was consumed exactly
func (r *Reader) Finish() error {
	if nil != r.err {
		return r.err
	}
	if r.n != len(r.record) {
		return fault.ErrNotTransactionPack
	}
	return nil
}

func (r *Reader) fail(err error) {
	if nil == r.err {
		r.err = err
	}
}

// Uint64 - read a Varint64
func (r *Reader) Uint64() uint64 {
	if nil != r.err {
		return 0
	}
	value, count := util.FromVarint64(r.record[r.n:])
	if 0 == count {
		r.fail(fault.ErrNotTransactionPack)
		return 0
	}
	r.n += count
	return value
}

// Int64 - read a zigzag Varint64
func (r *Reader) Int64() int64 {
	if nil != r.err {
		return 0
	}
	value, count := util.FromSignedVarint64(r.record[r.n:])
	if 0 == count {
		r.fail(fault.ErrNotTransactionPack)
		return 0
	}
	r.n += count
	return value
}

// Count - read a Varint64 that bounds a following list or field
//
// every counted item takes at least one byte so a count larger than
// the rest of the record is an error
func (r *Reader) Count() int {
	v := r.Uint64()
	if v > uint64(len(r.record)-r.n) {
		r.fail(fault.ErrNotTransactionPack)
		return 0
	}
	return int(v)
}

// Bool - read a 0/1 Varint64
func (r *Reader) Bool() bool {
	switch r.Uint64() {
	case 0:
		return false
	case 1:
		return true
	default:
		r.fail(fault.ErrNotTransactionPack)
		return false
	}
}

// Bytes - read a length prefixed field into a fresh slice
func (r *Reader) Bytes() []byte {
	length := r.Count()
	if nil != r.err {
		return nil
	}
	b := make([]byte, length)
	copy(b, r.record[r.n:r.n+length])
	r.n += length
	return b
}

// Packed - read a length prefixed nested record
func (r *Reader) Packed() Packed {
	return Packed(r.Bytes())
}

// Text - read a length prefixed string
func (r *Reader) Text() string {
	return string(r.Bytes())
}

// Digest - read a length prefixed digest
func (r *Reader) Digest() merkle.Digest {
	var d merkle.Digest
	b := r.Bytes()
	if nil != r.err {
		return d
	}
	if err := merkle.DigestFromBytes(&d, b); nil != err {
		r.fail(err)
	}
	return d
}

// Account - read a length prefixed account, zero length is nil
func (r *Reader) Account() *account.Account {
	b := r.Bytes()
	if nil != r.err || 0 == len(b) {
		return nil
	}
	a, err := account.AccountFromBytes(b)
	if nil != err {
		r.fail(err)
		return nil
	}
	return a
}

// Accounts - read a counted list of accounts
func (r *Reader) Accounts() []*account.Account {
	count := r.Count()
	accounts := make([]*account.Account, 0, count)
	for i := 0; i < count && nil == r.err; i += 1 {
		accounts = append(accounts, r.Account())
	}
	return accounts
}

// Party - read a party written by AppendParty
func (r *Reader) Party() *identity.Party {
	if !r.Bool() {
		return nil
	}
	name := r.Text()
	key := r.Account()
	notary := r.Bool()
	if nil != r.err {
		return nil
	}
	return identity.New(name, key, notary)
}

// Time - read zigzag seconds and nanoseconds as UTC
func (r *Reader) Time() time.Time {
	seconds := r.Int64()
	nanoseconds := r.Uint64()
	if nil != r.err {
		return time.Time{}
	}
	if nanoseconds >= uint64(time.Second) {
		r.fail(fault.ErrNotTransactionPack)
		return time.Time{}
	}
	return time.Unix(seconds, int64(nanoseconds)).UTC()
}
