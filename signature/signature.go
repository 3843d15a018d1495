// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signature - transaction signatures bound to a transaction id
//
// the signed message is the transaction id followed by the signature
// metadata, so a signature cannot be moved to another transaction or
// replayed with different metadata
package signature

import (
	"bytes"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Meta - details covered by the signature in addition to the id
type Meta struct {
	PlatformVersion uint64 `json:"platformVersion"`
}

// Signature - the signer's key, the detached signature and its metadata
type Signature struct {
	Signer *account.Account  `json:"signer"`
	Bytes  account.Signature `json:"bytes"`
	Meta   Meta              `json:"meta"`
}

// Message - the bytes that are signed for a transaction id
func Message(id merkle.Digest, meta Meta) []byte {
	message := transactionrecord.AppendDigest(nil, id)
	return transactionrecord.AppendUint64(message, meta.PlatformVersion)
}

// Verify - check the signature against a transaction id
func (s *Signature) Verify(id merkle.Digest) error {
	if nil == s.Signer || nil == s.Signer.AccountInterface {
		return fault.ErrInvalidSignature
	}
	err := s.Signer.CheckSignature(Message(id, s.Meta), s.Bytes)
	if nil != err {
		return &fault.SignatureFailureError{
			Signer: s.Signer.String(),
			TxId:   id.String(),
		}
	}
	return nil
}

// Pack - deterministic encoding
func (s *Signature) Pack() transactionrecord.Packed {
	message := transactionrecord.AppendAccount(nil, s.Signer)
	message = transactionrecord.AppendBytes(message, s.Bytes)
	return transactionrecord.AppendUint64(message, s.Meta.PlatformVersion)
}

// Unpack - decode a record produced by Pack
func Unpack(record transactionrecord.Packed) (*Signature, error) {
	r := transactionrecord.NewReader(record)
	s := &Signature{
		Signer: r.Account(),
		Bytes:  r.Bytes(),
		Meta: Meta{
			PlatformVersion: r.Uint64(),
		},
	}
	if err := r.Finish(); nil != err {
		return nil, err
	}
	return s, nil
}

// Equal - same signer, bytes and metadata
func Equal(a *Signature, b *Signature) bool {
	if nil == a || nil == b {
		return nil == a && nil == b
	}
	return bytes.Equal(a.Pack(), b.Pack())
}
