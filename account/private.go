// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/util"
)

// PrivateKey - an ed25519 signing key
type PrivateKey struct {
	Test       bool
	PrivateKey ed25519.PrivateKey
}

// NewPrivateKey - generate a random key
func NewPrivateKey(test bool) (*PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: priv,
	}, nil
}

// PrivateKeyFromSeed - deterministic key from a 32 byte seed
func PrivateKeyFromSeed(seed []byte, test bool) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{
		Test:       test,
		PrivateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// PrivateKeyFromBase58 - converts a Base58 encoded string with
// trailing checksum and returns a private key
func PrivateKeyFromBase58(privateKeyBase58Encoded string) (*PrivateKey, error) {
	decoded := util.FromBase58(privateKeyBase58Encoded)
	if len(decoded) <= checksumLength {
		return nil, fault.ErrCannotDecodeAccount
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}
	return PrivateKeyFromBytes(decoded[:checksumStart])
}

// PrivateKeyFromBytes - converts a byte encoded buffer and returns a private key
func PrivateKeyFromBytes(privateKeyBytes []byte) (*PrivateKey, error) {
	keyVariant, keyVariantLength := util.FromVarint64(privateKeyBytes)
	if 0 == keyVariantLength || keyVariant&publicKeyCode == publicKeyCode {
		return nil, fault.ErrInvalidKeyType
	}
	if ED25519 != keyVariant>>algorithmShift {
		return nil, fault.ErrInvalidKeyType
	}
	if ed25519.PrivateKeySize != len(privateKeyBytes)-keyVariantLength {
		return nil, fault.ErrInvalidKeyLength
	}

	priv := make([]byte, ed25519.PrivateKeySize)
	copy(priv, privateKeyBytes[keyVariantLength:])

	return &PrivateKey{
		Test:       0 != keyVariant&testKeyCode,
		PrivateKey: priv,
	}, nil
}

// Account - return the corresponding account
func (privateKey *PrivateKey) Account() *Account {
	return &Account{
		AccountInterface: &ED25519Account{
			Test:      privateKey.Test,
			PublicKey: []byte(privateKey.PrivateKey.Public().(ed25519.PublicKey)),
		},
	}
}

// Sign - detached signature of a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(privateKey.PrivateKey, message)
}

// Bytes - byte slice for encoded key
func (privateKey *PrivateKey) Bytes() []byte {
	keyVariant := byte(ED25519 << algorithmShift)
	if privateKey.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, privateKey.PrivateKey...)
}

// String - base58 encoding of encoded key
func (privateKey *PrivateKey) String() string {
	return withChecksum(privateKey.Bytes())
}
