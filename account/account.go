// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/util"
)

// enumeration of supported key algorithms
const (
	ED25519 = 1
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode = 0x01
	testKeyCode   = 0x02

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Account - base type for accounts
type Account struct {
	AccountInterface
}

// AccountInterface - the operations every key algorithm provides
type AccountInterface interface {
	KeyType() int
	PublicKeyBytes() []byte
	CheckSignature(message []byte, signature Signature) error
	Bytes() []byte
	String() string
	MarshalText() ([]byte, error)
	IsTesting() bool
}

// ED25519Account - for ed25519 signatures
type ED25519Account struct {
	Test      bool
	PublicKey []byte
}

// AccountFromBase58 - converts a Base58 encoded string with trailing
// checksum and returns an account
func AccountFromBase58(accountBase58Encoded string) (*Account, error) {
	accountDecoded := util.FromBase58(accountBase58Encoded)
	if 0 == len(accountDecoded) {
		return nil, fault.ErrCannotDecodeAccount
	}
	return decode(accountDecoded, true)
}

// AccountFromBytes - converts a byte encoded buffer and returns an account
func AccountFromBytes(accountBytes []byte) (*Account, error) {
	return decode(accountBytes, false)
}

func decode(buffer []byte, withChecksum bool) (*Account, error) {
	keyVariant, keyVariantLength := util.FromVarint64(buffer)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return nil, fault.ErrNotAPublicKey
	}

	if ED25519 != keyVariant>>algorithmShift {
		return nil, fault.ErrInvalidKeyType
	}

	isTest := 0 != keyVariant&testKeyCode

	end := len(buffer)
	if withChecksum {
		end -= checksumLength
	}
	if end-keyVariantLength <= 0 {
		return nil, fault.ErrInvalidKeyLength
	}

	if withChecksum {
		checksum := sha3.Sum256(buffer[:end])
		if !bytes.Equal(checksum[:checksumLength], buffer[end:]) {
			return nil, fault.ErrChecksumMismatch
		}
	}

	if ed25519.PublicKeySize != end-keyVariantLength {
		return nil, fault.ErrInvalidKeyLength
	}

	publicKey := make([]byte, ed25519.PublicKeySize)
	copy(publicKey, buffer[keyVariantLength:end])

	account := &Account{
		AccountInterface: &ED25519Account{
			Test:      isTest,
			PublicKey: publicKey,
		},
	}
	return account, nil
}

// UnmarshalText - convert from the Base58 JSON form
func (account *Account) UnmarshalText(s []byte) error {
	a, err := AccountFromBase58(string(s))
	if nil != err {
		return err
	}
	account.AccountInterface = a.AccountInterface
	return nil
}

// Equal - same algorithm, network and public key
//
// two nil accounts are equal
func Equal(a *Account, b *Account) bool {
	if nil == a || nil == a.AccountInterface {
		return nil == b || nil == b.AccountInterface
	}
	if nil == b || nil == b.AccountInterface {
		return false
	}
	return bytes.Equal(a.Bytes(), b.Bytes())
}

// MapKey - a comparable representation for use as a map key
func (account *Account) MapKey() string {
	return string(account.Bytes())
}

// ED25519
// -------

// KeyType - key type code (see enumeration above)
func (account *ED25519Account) KeyType() int {
	return ED25519
}

// PublicKeyBytes - fetch the public key as byte slice
func (account *ED25519Account) PublicKeyBytes() []byte {
	return account.PublicKey[:]
}

// CheckSignature - check the signature of a message
func (account *ED25519Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.PublicKey[:], message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// Bytes - byte slice for encoded key
func (account *ED25519Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	if account.Test {
		keyVariant |= testKeyCode
	}
	return append([]byte{keyVariant}, account.PublicKey[:]...)
}

// String - base58 encoding of encoded key
func (account *ED25519Account) String() string {
	return withChecksum(account.Bytes())
}

// MarshalText - convert an account to its Base58 JSON form
func (account ED25519Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// IsTesting - return whether the public key is in test mode or not
func (account ED25519Account) IsTesting() bool {
	return account.Test
}

func withChecksum(buffer []byte) string {
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return util.ToBase58(buffer)
}
