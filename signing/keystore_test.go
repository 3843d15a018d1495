// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signing_test

import (
	"errors"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/fixtures"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/signing"
)

func TestSign(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	k := signing.New(logger.New(fixtures.LogCategory), 7)
	alice := k.Add(fixtures.AliceKey)
	assert.True(t, k.Has(alice), "alice missing")
	assert.False(t, k.Has(fixtures.Bob.Key), "bob present")
	assert.False(t, k.Has(nil), "nil present")

	id := merkle.NewDigest([]byte("transaction"))
	sig, err := k.Sign(id, alice)
	assert.Nil(t, err, "sign")
	assert.Equal(t, alice, sig.Signer, "signer")
	assert.Equal(t, uint64(7), sig.Meta.PlatformVersion, "platform version")
	assert.Nil(t, sig.Verify(id), "verify")
	assert.True(t, fault.IsErrSignature(sig.Verify(merkle.NewDigest([]byte("other")))), "verified other id")
}

func TestSignUnknownIdentity(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	k := signing.New(logger.New(fixtures.LogCategory), 1)
	id := merkle.NewDigest([]byte("transaction"))

	sig, err := k.Sign(id, fixtures.Bob.Key)
	assert.Nil(t, sig, "signature returned")
	assert.True(t, fault.IsErrKey(err), "wrong class: %v", err)
	var detail *fault.UnknownIdentityError
	assert.True(t, errors.As(err, &detail), "no detail")
	assert.Equal(t, fixtures.Bob.Key.String(), detail.Key, "key")

	_, err = k.Sign(id, nil)
	assert.True(t, fault.IsErrKey(err), "nil identity: %v", err)
}

func TestGenerate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	k := signing.New(logger.New(fixtures.LogCategory), 1)
	a, err := k.Generate(true)
	assert.Nil(t, err, "generate")
	assert.True(t, a.IsTesting(), "not a test key")
	assert.True(t, k.Has(a), "generated key missing")

	id := merkle.NewDigest([]byte("transaction"))
	sig, err := k.Sign(id, a)
	assert.Nil(t, err, "sign")
	assert.Nil(t, sig.Verify(id), "verify")
}
