// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package services_test

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/configuration"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/fixtures"
	"github.com/bitmark-inc/ledgertx/mocks"
	"github.com/bitmark-inc/ledgertx/services"
	"github.com/bitmark-inc/ledgertx/transaction"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func newConfig(t *testing.T, keys ...*account.PrivateKey) (*configuration.Configuration, func()) {
	dir, err := ioutil.TempDir("", "ledgertx-services")
	assert.Nil(t, err, "temp dir")

	config := &configuration.Configuration{
		DataDirectory:   dir,
		Database:        filepath.Join(dir, "ledgertx.leveldb"),
		PlatformVersion: fixtures.PlatformVersion,
		Testing:         true,
		CacheExpiry:     60,
	}
	for _, k := range keys {
		config.Keys = append(config.Keys, k.String())
	}
	return config, func() { os.RemoveAll(dir) }
}

func initialise(t *testing.T) func() {
	config, cleanup := newConfig(t, fixtures.NotaryKey, fixtures.AliceKey)
	if err := services.Initialise(config, false); nil != err {
		cleanup()
		t.Fatalf("initialise error: %s", err)
	}
	return func() {
		services.Finalise()
		cleanup()
	}
}

// assemble with the service keystore, content checks are deferred to Record
func assemble(t *testing.T, ctl *gomock.Controller, b *transaction.Builder) *transaction.SignedTransaction {
	verifier := mocks.NewMockLedgerVerifier(ctl)
	verifier.EXPECT().Verify(gomock.Any()).Return(nil)

	stx, err := b.Assemble(services.Keystore(), fixtures.Alice.Key, verifier)
	assert.Nil(t, err, "assemble")
	return stx
}

func issue(t *testing.T, ctl *gomock.Controller, members ...*account.Account) *transaction.SignedTransaction {
	b, _ := transaction.NewBuilder(fixtures.Notary)
	assert.Nil(t, b.AddOutputState(fixtures.Linear("deal", 1, members...)), "output")
	assert.Nil(t, b.AddCommand(&transactionrecord.LinearUpdate{}, fixtures.Alice.Key), "command")
	return assemble(t, ctl, b)
}

func update(t *testing.T, ctl *gomock.Controller, in transactionrecord.StateAndRef) *transaction.SignedTransaction {
	b, _ := transaction.NewBuilder(fixtures.Notary)
	assert.Nil(t, b.AddInputState(in), "input")
	assert.Nil(t, b.AddOutputState(fixtures.Linear("deal", 2, fixtures.Alice.Key)), "output")
	assert.Nil(t, b.AddCommand(&transactionrecord.LinearUpdate{}, fixtures.Alice.Key), "command")
	stx := assemble(t, ctl, b)

	sig, err := services.Keystore().Sign(stx.Id(), fixtures.Notary.Key)
	assert.Nil(t, err, "notary sign")
	assert.Nil(t, stx.AddSignature(sig), "notary signature")
	return stx
}

func TestInitialiseFinalise(t *testing.T) {
	config, cleanup := newConfig(t, fixtures.NotaryKey)
	defer cleanup()

	assert.Nil(t, services.Initialise(config, false), "initialise")
	assert.Equal(t, fault.ErrAlreadyInitialised, services.Initialise(config, false), "second initialise")

	assert.True(t, services.Keystore().Has(fixtures.Notary.Key), "notary key missing")
	assert.False(t, services.Keystore().Has(fixtures.Bob.Key), "unexpected key")
	assert.NotNil(t, services.Store(), "store")
	assert.NotNil(t, services.Verifier(), "verifier")

	assert.Nil(t, services.AddKeys([]string{fixtures.BobKey.String()}, true), "add keys")
	assert.True(t, services.Keystore().Has(fixtures.Bob.Key), "added key missing")
	err := services.AddKeys([]string{fixtures.CharlieKey.String()}, false)
	assert.True(t, errors.Is(err, fault.ErrWrongNetworkForPublicKey), "wrong network: %v", err)
	assert.False(t, services.Keystore().Has(fixtures.Charlie.Key), "wrong network key added")

	assert.Nil(t, services.Finalise(), "finalise")
	assert.Equal(t, fault.ErrNotInitialised, services.Finalise(), "second finalise")
	assert.Nil(t, services.Store(), "store after finalise")

	_, err = services.Import(nil)
	assert.Equal(t, fault.ErrNotInitialised, err, "import after finalise")
	assert.Equal(t, fault.ErrNotInitialised, services.AddKeys(nil, true), "add keys after finalise")
	assert.Equal(t, fault.ErrNotInitialised, services.Follow(nil, time.Second), "follow after finalise")

	// the database survives a restart
	assert.Nil(t, services.Initialise(config, true), "read only initialise")
	assert.Nil(t, services.Finalise(), "finalise")
}

func TestInitialiseKeys(t *testing.T) {
	config, cleanup := newConfig(t)
	defer cleanup()

	config.Keys = []string{"not-a-key"}
	err := services.Initialise(config, false)
	assert.True(t, errors.Is(err, fault.ErrInvalidConfiguration), "bad key: %v", err)

	config.Keys = []string{fixtures.AliceKey.String()}
	config.Testing = false
	err = services.Initialise(config, false)
	assert.True(t, errors.Is(err, fault.ErrWrongNetworkForPublicKey), "wrong network: %v", err)

	assert.Equal(t, fault.ErrNotInitialised, services.Finalise(), "failed initialise left state")
}

func TestImportOrdersDependencies(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	defer initialise(t)()

	first := issue(t, ctl, fixtures.Alice.Key)
	in, err := first.Wire().OutRef(0)
	assert.Nil(t, err, "out ref")
	second := update(t, ctl, in)

	n, err := services.Import([]*transaction.SignedTransaction{second, first})
	assert.Nil(t, err, "import")
	assert.Equal(t, 2, n, "recorded")

	consumer, consumed, err := services.Store().ConsumedBy(in.Ref)
	assert.Nil(t, err, "consumed by")
	assert.True(t, consumed, "input not consumed")
	assert.Equal(t, second.Id(), consumer, "consumer")

	assert.Nil(t, services.Record(second), "record again")
}

func TestRecordRejects(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()
	defer initialise(t)()

	// bob is a member but did not sign the update
	unsigned := issue(t, ctl, fixtures.Alice.Key, fixtures.Bob.Key)
	err := services.Record(unsigned)
	assert.True(t, errors.Is(err, fault.ErrContractRejection), "unsigned member: %v", err)

	// the input was never recorded
	orphan := update(t, ctl, fixtures.Input(9, fixtures.Notary, fixtures.Alice.Key))
	err = services.Record(orphan)
	assert.True(t, fault.IsErrResolution(err), "unresolved input: %v", err)

	n, err := services.Import([]*transaction.SignedTransaction{orphan, orphan})
	assert.True(t, errors.Is(err, fault.ErrDuplicateTransaction), "duplicate: %v", err)
	assert.Equal(t, 0, n, "recorded")

	transactions, _, err := services.Store().Counts()
	assert.Nil(t, err, "counts")
	assert.Equal(t, 0, transactions, "transactions recorded")
}

func keysConfig(keys ...*account.PrivateKey) []byte {
	list := ""
	for _, k := range keys {
		list += fmt.Sprintf("%q, ", k.String())
	}
	return []byte(fmt.Sprintf(`return { data_directory = ".", testing = true, keys = { %s } }`, list))
}

func TestFollowReloadsKeys(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledgertx-follow")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "ledgertx.conf")
	assert.Nil(t, ioutil.WriteFile(file, keysConfig(fixtures.NotaryKey), 0600), "write config")

	config, err := configuration.Load(file)
	assert.Nil(t, err, "load")
	assert.Nil(t, services.Initialise(config, false), "initialise")
	defer services.Finalise()

	watcher, err := configuration.NewWatcher(file, logger.New(fixtures.LogCategory))
	assert.Nil(t, err, "watcher")
	assert.Nil(t, watcher.Start(), "start watcher")
	defer watcher.Stop()

	assert.Nil(t, services.Follow(watcher, 10*time.Millisecond), "follow")
	assert.Equal(t, fault.ErrAlreadyInitialised, services.Follow(watcher, time.Second), "second follow")

	assert.False(t, services.Keystore().Has(fixtures.Bob.Key), "bob key before reload")
	assert.Nil(t, ioutil.WriteFile(file, keysConfig(fixtures.NotaryKey, fixtures.BobKey), 0600), "rewrite config")

	deadline := time.Now().Add(5 * time.Second)
	for !services.Keystore().Has(fixtures.Bob.Key) {
		if time.Now().After(deadline) {
			t.Fatal("keys not reloaded")
		}
		time.Sleep(10 * time.Millisecond)
	}
	assert.True(t, services.Keystore().Has(fixtures.Notary.Key), "notary key lost")

	assert.Nil(t, services.Finalise(), "finalise")
}
