// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package signing - in memory signing service
package signing

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/fault"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/signature"
)

// Keystore - private keys indexed by their account
type Keystore struct {
	lock            sync.RWMutex
	log             *logger.L
	platformVersion uint64
	keys            map[string]*account.PrivateKey
}

// New - empty keystore that signs with the given platform version
func New(log *logger.L, platformVersion uint64) *Keystore {
	return &Keystore{
		log:             log,
		platformVersion: platformVersion,
		keys:            make(map[string]*account.PrivateKey),
	}
}

// Add - register a private key, returns its account
func (k *Keystore) Add(privateKey *account.PrivateKey) *account.Account {
	a := privateKey.Account()

	k.lock.Lock()
	k.keys[a.MapKey()] = privateKey
	k.lock.Unlock()

	k.log.Infof("add key: %s", a)
	return a
}

// Generate - create and register a random key
func (k *Keystore) Generate(testnet bool) (*account.Account, error) {
	privateKey, err := account.NewPrivateKey(testnet)
	if nil != err {
		k.log.Errorf("generate key error: %s", err)
		return nil, err
	}
	return k.Add(privateKey), nil
}

// Has - true if the keystore can sign for the identity
func (k *Keystore) Has(identity *account.Account) bool {
	if nil == identity || nil == identity.AccountInterface {
		return false
	}
	k.lock.RLock()
	defer k.lock.RUnlock()
	_, ok := k.keys[identity.MapKey()]
	return ok
}

// Sign - sign a transaction id as the identity
func (k *Keystore) Sign(id merkle.Digest, identity *account.Account) (*signature.Signature, error) {
	if nil == identity || nil == identity.AccountInterface {
		return nil, &fault.UnknownIdentityError{Key: "<none>"}
	}

	k.lock.RLock()
	privateKey, ok := k.keys[identity.MapKey()]
	k.lock.RUnlock()

	if !ok {
		k.log.Warnf("sign: tx: %s  unknown identity: %s", id, identity)
		return nil, &fault.UnknownIdentityError{Key: identity.String()}
	}

	meta := signature.Meta{
		PlatformVersion: k.platformVersion,
	}
	sig := &signature.Signature{
		Signer: privateKey.Account(),
		Bytes:  privateKey.Sign(signature.Message(id, meta)),
		Meta:   meta,
	}
	k.log.Debugf("sign: tx: %s  signer: %s", id, identity)
	return sig, nil
}
