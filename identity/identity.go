// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package identity - named ledger participants
package identity

import (
	"github.com/bitmark-inc/ledgertx/account"
)

// Party - a participant identified by its public key
type Party struct {
	Name   string           `json:"name"`
	Key    *account.Account `json:"key"`
	Notary bool             `json:"notary"`
}

// New - create a party
func New(name string, key *account.Account, notary bool) *Party {
	return &Party{
		Name:   name,
		Key:    key,
		Notary: notary,
	}
}

// Equal - parties are the same if their keys are the same, the name
// and the notary flag are informational only
func Equal(a *Party, b *Party) bool {
	if nil == a || nil == b {
		return nil == a && nil == b
	}
	return account.Equal(a.Key, b.Key)
}

// String - name and key for log messages
func (p *Party) String() string {
	if nil == p {
		return "<none>"
	}
	if nil == p.Key || nil == p.Key.AccountInterface {
		return p.Name + "(<no key>)"
	}
	return p.Name + "(" + p.Key.String() + ")"
}
