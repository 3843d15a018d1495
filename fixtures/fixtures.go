// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared keys, parties and states for tests
package fixtures

import (
	"fmt"
	"os"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/identity"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/signing"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

const (
	dir         = "testing"
	LogCategory = "testing"

	PlatformVersion = 4
)

// deterministic keys
var (
	NotaryKey  = privateKey(0x10)
	OtherKey   = privateKey(0x20)
	AliceKey   = privateKey(0x30)
	BobKey     = privateKey(0x40)
	CharlieKey = privateKey(0x50)
	IssuerKey  = privateKey(0x60)
)

// parties for the keys
var (
	Notary      = identity.New("Notary", NotaryKey.Account(), true)
	OtherNotary = identity.New("Other Notary", OtherKey.Account(), true)
	Alice       = identity.New("Alice", AliceKey.Account(), false)
	Bob         = identity.New("Bob", BobKey.Account(), false)
	Charlie     = identity.New("Charlie", CharlieKey.Account(), false)
	Issuer      = identity.New("Bank", IssuerKey.Account(), false)
)

// Epoch - fixed reference time
var Epoch = time.Date(2020, time.March, 1, 12, 0, 0, 0, time.UTC)

func privateKey(b byte) *account.PrivateKey {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = b + byte(i)
	}
	key, err := account.PrivateKeyFromSeed(seed, true)
	if nil != err {
		panic(err)
	}
	return key
}

// SetupTestLogger - log to a local directory, critical messages only
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log files
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// Keystore - signing service holding every fixture key
func Keystore() *signing.Keystore {
	k := signing.New(logger.New(LogCategory), PlatformVersion)
	for _, key := range []*account.PrivateKey{NotaryKey, OtherKey, AliceKey, BobKey, CharlieKey, IssuerKey} {
		k.Add(key)
	}
	return k
}

// TxId - a distinct fake transaction id
func TxId(n byte) merkle.Digest {
	return merkle.NewDigest([]byte{'t', 'x', n})
}

// Input - a linear state as the output of a fake earlier transaction
func Input(n byte, notary *identity.Party, members ...*account.Account) transactionrecord.StateAndRef {
	return transactionrecord.StateAndRef{
		State: transactionrecord.TransactionState{
			Data:   Linear(fmt.Sprintf("linear-%d", n), int64(n), members...),
			Notary: notary,
		},
		Ref: transactionrecord.StateRef{
			TxId:  TxId(n),
			Index: 0,
		},
	}
}

// Linear - a linear state with fixed content
func Linear(id string, number int64, members ...*account.Account) *transactionrecord.LinearState {
	return &transactionrecord.LinearState{
		LinearId:  id,
		Text:      "fixture",
		Number:    number,
		Flag:      true,
		Timestamp: Epoch,
		Members:   members,
	}
}

// Cash - a cash state issued by the fixture issuer
func Cash(amount uint64, currency string, owner *account.Account) *transactionrecord.CashState {
	return &transactionrecord.CashState{
		Amount:    amount,
		Currency:  currency,
		Issuer:    Issuer,
		IssuerRef: []byte{1},
		Owner:     owner,
	}
}
