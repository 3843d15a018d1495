// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"time"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/util"
)

// AppendString - append a single field to a buffer
//
// the field is prefixed by Varint64(length)
func AppendString(buffer Packed, s string) Packed {
	l := util.ToVarint64(uint64(len(s)))
	buffer = append(buffer, l...)
	return append(buffer, s...)
}

// AppendBytes - append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func AppendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	return append(buffer, data...)
}

// AppendUint64 - append a Varint64 to buffer
func AppendUint64(buffer Packed, value uint64) Packed {
	return append(buffer, util.ToVarint64(value)...)
}

// AppendInt64 - append a zigzag Varint64 to buffer
func AppendInt64(buffer Packed, value int64) Packed {
	return append(buffer, util.ToSignedVarint64(value)...)
}

// AppendBool - append a single 0/1 Varint64
func AppendBool(buffer Packed, b bool) Packed {
	if b {
		return AppendUint64(buffer, 1)
	}
	return AppendUint64(buffer, 0)
}

// AppendAccount - append an account to a buffer
//
// the field is prefixed by Varint64(length), a nil account has zero length
func AppendAccount(buffer Packed, address *account.Account) Packed {
	if nil == address || nil == address.AccountInterface {
		return AppendUint64(buffer, 0)
	}
	return AppendBytes(buffer, address.Bytes())
}

// AppendAccounts - append a count followed by each account
func AppendAccounts(buffer Packed, accounts []*account.Account) Packed {
	buffer = AppendUint64(buffer, uint64(len(accounts)))
	for _, a := range accounts {
		buffer = AppendAccount(buffer, a)
	}
	return buffer
}

// AppendParty - append name, key and notary flag
//
// a nil party is a single zero byte
func AppendParty(buffer Packed, party *identity.Party) Packed {
	if nil == party {
		return AppendUint64(buffer, 0)
	}
	buffer = AppendUint64(buffer, 1)
	buffer = AppendString(buffer, party.Name)
	buffer = AppendAccount(buffer, party.Key)
	return AppendBool(buffer, party.Notary)
}

// AppendDigest - append a fixed length digest
func AppendDigest(buffer Packed, digest merkle.Digest) Packed {
	return AppendBytes(buffer, digest[:])
}

// AppendTime - append zigzag unix seconds followed by nanoseconds
func AppendTime(buffer Packed, t time.Time) Packed {
	buffer = AppendInt64(buffer, t.Unix())
	return AppendUint64(buffer, uint64(t.Nanosecond()))
}
