// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/bitmark-inc/ledgertx/account"
	"github.com/bitmark-inc/ledgertx/merkle"
	"github.com/bitmark-inc/ledgertx/signature"
	"github.com/bitmark-inc/ledgertx/transactionrecord"
)

// Signer - the signing service
//
// Sign fails with a fault.KeyError if the identity is not known
type Signer interface {
	Sign(id merkle.Digest, identity *account.Account) (*signature.Signature, error)
}

// LedgerVerifier - resolves inputs and attachments and runs contract
// logic
//
// Verify fails with fault.ResolutionError for unresolvable content
// and fault.VerificationError for rule violations
type LedgerVerifier interface {
	Verify(wtx *WireTransaction) error
}

// StateResolver - source of the states a transaction consumes
//
// a LedgerVerifier that also implements this has the input states
// carried by a signed transaction checked against its own copies
type StateResolver interface {
	ResolveState(ref transactionrecord.StateRef) (*transactionrecord.TransactionState, error)
}
